package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/billsyncorg/billsync/internal/ledger"
	"github.com/billsyncorg/billsync/internal/metrics"
	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
)

// ExpenseService orchestrates expense creation: validation, persistence, and
// the debt-ledger update.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpenseRequest is the logical add-expense request shape.
type AddExpenseRequest struct {
	GroupID     string               `json:"groupId"`
	Description string               `json:"description"`
	TotalAmount float64              `json:"totalAmount"`
	PaidBy      string               `json:"paidBy"`
	SplitMethod models.SplitMethod   `json:"splitMethod"`
	SplitAmong  []string             `json:"splitAmong,omitempty"`
	Items       []models.ExpenseItem `json:"items,omitempty"`
}

// AddExpense records one expense and merges its contribution into the group's
// debt ledger.
//
// The sequence: resolve the group, check the payer's membership, validate the
// split-method-specific structure, then hand the expense and its computed debt
// delta to the store, which commits both in one transaction. Any validation
// failure aborts before anything is written. The returned expense carries the
// store-assigned identity.
func (s *ExpenseService) AddExpense(ctx context.Context, req AddExpenseRequest) (*models.Expense, error) {
	if req.TotalAmount <= 0 {
		return nil, &ValidationError{Reason: "totalAmount must be positive"}
	}
	if !req.SplitMethod.Valid() {
		return nil, &ledger.StructuralError{Reason: "unknown split method: " + string(req.SplitMethod)}
	}

	group, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if !group.HasMember(req.PaidBy) {
		return nil, &ledger.MembershipError{UserID: req.PaidBy, Where: "paidBy"}
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		PaidBy:      req.PaidBy,
		SplitMethod: req.SplitMethod,
		CreatedAt:   time.Now().Unix(),
	}

	switch req.SplitMethod {
	case models.SplitItemized:
		if err := ledger.ValidateItemizedSplit(req.Items, group); err != nil {
			return nil, err
		}
		expense.Items = req.Items
	case models.SplitEqual:
		// An omitted participant list means the whole group splits.
		splitAmong := req.SplitAmong
		if len(splitAmong) == 0 {
			splitAmong = group.Members
		}
		if err := ledger.ValidateEqualSplit(splitAmong, group); err != nil {
			return nil, err
		}
		expense.SplitAmong = splitAmong
	default:
		return nil, &ledger.StructuralError{Reason: "unknown split method: " + string(req.SplitMethod)}
	}

	delta, err := ledger.Apply(group, expense)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense, delta); err != nil {
		return nil, err
	}

	metrics.ExpensesCreated.WithLabelValues(string(expense.SplitMethod)).Inc()
	slog.Info("Expense added",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"paid_by", expense.PaidBy,
		"split_method", expense.SplitMethod,
		"total_amount", expense.TotalAmount,
	)
	return expense, nil
}

// ListExpensesByGroup returns all expenses recorded for a group.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	// Resolve the group first so a bad ID surfaces as not-found rather
	// than an empty list.
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}
