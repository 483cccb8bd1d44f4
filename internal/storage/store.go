// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/billsyncorg/billsync/internal/ledger"
	"github.com/billsyncorg/billsync/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique constraint is violated
	// (duplicate group name, email, or phone number).
	ErrConflict = errors.New("record already exists")
)

// Store defines the interface for BillSync storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateUser persists a new user. Returns ErrConflict if the email or
	// phone number is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByPhone retrieves a user by phone number. Returns ErrNotFound if absent.
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID.
	// IDs with no matching user are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns the id+name projection of every registered user.
	ListUsers(ctx context.Context) ([]models.UserSummary, error)

	// CreateGroup persists a new group with its member list and an empty
	// debt ledger. The group's ID and CreatedAt are populated by the store.
	// Returns ErrConflict if the group name is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members and debt ledger.
	// Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// UpdateGroup persists the group's name and member list in one
	// transaction. Debts are not touched; they change only through
	// CreateExpense. Returns ErrNotFound if the group does not exist and
	// ErrConflict if the new name is taken.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// CreateExpense persists the expense and merges the debt delta into the
	// group's ledger in a single transaction. Debt cells are merged
	// additively at the row level, so concurrent expense additions to the
	// same group cannot lose updates. The expense's ID and CreatedAt are
	// populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense, delta ledger.Delta) error

	// ListExpensesByGroup returns all expenses recorded for a group,
	// newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// BlacklistToken records a JWT as invalidated by logout.
	BlacklistToken(ctx context.Context, token string) error

	// IsTokenBlacklisted reports whether a token has been blacklisted.
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
