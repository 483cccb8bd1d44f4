package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billsyncorg/billsync/internal/ledger"
	"github.com/billsyncorg/billsync/internal/models"
)

// CreateExpense persists the expense and merges the debt delta into the
// group's ledger in a single transaction. Debt cells are merged additively
// with an UPSERT, so two concurrent expense additions to the same group both
// land: neither overwrites the other's increment, and an expense row never
// commits without its ledger update.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, delta ledger.Delta) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, total_amount, paid_by, split_method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.TotalAmount,
		expense.PaidBy, string(expense.SplitMethod), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, userID := range expense.SplitAmong {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, position) VALUES (?, ?, ?)",
			expense.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range expense.Items {
		item := &expense.Items[i]
		itemID := uuid.New().String()

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_items (id, expense_id, position, name, price) VALUES (?, ?, ?, ?, ?)",
			itemID, expense.ID, i, item.Name, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, userID := range item.SharedAmong {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_item_shares (item_id, user_id, position) VALUES (?, ?, ?)",
				itemID, userID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item share: %w", err)
			}
		}
	}

	for debtor, owed := range delta {
		for creditor, amount := range owed {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO group_debts (group_id, debtor_id, creditor_id, amount)
				 VALUES (?, ?, ?, ?)
				 ON CONFLICT(group_id, debtor_id, creditor_id)
				 DO UPDATE SET amount = amount + excluded.amount`,
				expense.GroupID, debtor, creditor, amount,
			)
			if err != nil {
				return fmt.Errorf("failed to merge debt: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup returns all expenses recorded for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, total_amount, paid_by, split_method, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var method string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &e.TotalAmount,
			&e.PaidBy, &method, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitMethod = models.SplitMethod(method)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadExpenseDetails(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// loadExpenseDetails fills in the split-method-specific participant structure.
func (s *SQLiteStore) loadExpenseDetails(ctx context.Context, expense *models.Expense) error {
	if expense.SplitMethod == models.SplitEqual {
		rows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY position",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get participants: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var userID string
			if err := rows.Scan(&userID); err != nil {
				return fmt.Errorf("failed to scan participant: %w", err)
			}
			expense.SplitAmong = append(expense.SplitAmong, userID)
		}
		return rows.Err()
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price FROM expense_items WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	var itemIDs []string
	for itemRows.Next() {
		var itemID string
		var item models.ExpenseItem
		if err := itemRows.Scan(&itemID, &item.Name, &item.Price); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
		expense.Items = append(expense.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	for i, itemID := range itemIDs {
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM expense_item_shares WHERE item_id = ? ORDER BY position",
			itemID,
		)
		if err != nil {
			return fmt.Errorf("failed to get item shares: %w", err)
		}
		for shareRows.Next() {
			var userID string
			if err := shareRows.Scan(&userID); err != nil {
				shareRows.Close()
				return fmt.Errorf("failed to scan item share: %w", err)
			}
			expense.Items[i].SharedAmong = append(expense.Items[i].SharedAmong, userID)
		}
		shareRows.Close()
		if err := shareRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate item shares: %w", err)
		}
	}

	return nil
}
