package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billsyncorg/billsync/internal/ledger"
	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
	"github.com/billsyncorg/billsync/internal/storage/sqlite"
)

// setupServices seeds three users and one group, returning the wired services.
func setupServices(t *testing.T) (storage.Store, *GroupService, *ExpenseService, *models.Group) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, u := range []struct{ id, name, email, phone string }{
		{"u1", "Alice", "alice@example.com", "1111111111"},
		{"u2", "Bob", "bob@example.com", "2222222222"},
		{"u3", "Carol", "carol@example.com", "3333333333"},
	} {
		require.NoError(t, store.CreateUser(ctx, &models.User{
			ID: u.id, Name: u.name, Email: u.email, Phone: u.phone, PasswordHash: "x",
		}))
	}

	users := NewUserService(nil, nil, store)
	groups := NewGroupService(store, users)
	expenses := NewExpenseService(store)

	group, err := groups.CreateGroup(ctx, CreateGroupRequest{
		GroupName: "Trip",
		UserIDs:   []string{"u1", "u2", "u3"},
	})
	require.NoError(t, err)

	return store, groups, expenses, group
}

func TestAddExpenseEqualSplit(t *testing.T) {
	store, _, expenses, group := setupServices(t)
	ctx := context.Background()

	expense, err := expenses.AddExpense(ctx, AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Groceries",
		TotalAmount: 90,
		PaidBy:      "u1",
		SplitMethod: models.SplitEqual,
		SplitAmong:  []string{"u1", "u2", "u3"},
	})
	require.NoError(t, err)

	// The returned expense carries the store-assigned identity.
	assert.NotEmpty(t, expense.ID)
	assert.NotZero(t, expense.CreatedAt)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30, got.Debts["u2"]["u1"], 0.01)
	assert.InDelta(t, 30, got.Debts["u3"]["u1"], 0.01)
	// The payer never owes themselves.
	_, payerOwes := got.Debts["u1"]
	assert.False(t, payerOwes)
}

func TestAddExpenseDefaultsToFullMembership(t *testing.T) {
	store, _, expenses, group := setupServices(t)
	ctx := context.Background()

	expense, err := expenses.AddExpense(ctx, AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Rent",
		TotalAmount: 60,
		PaidBy:      "u2",
		SplitMethod: models.SplitEqual,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, expense.SplitAmong)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, got.Debts["u1"]["u2"], 0.01)
	assert.InDelta(t, 20, got.Debts["u3"]["u2"], 0.01)
}

func TestAddExpenseItemized(t *testing.T) {
	store, _, expenses, group := setupServices(t)
	ctx := context.Background()

	_, err := expenses.AddExpense(ctx, AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Shopping",
		TotalAmount: 16,
		PaidBy:      "u1",
		SplitMethod: models.SplitItemized,
		Items: []models.ExpenseItem{
			{Name: "Milk", Price: 10, SharedAmong: []string{"u1", "u2"}},
			{Name: "Bread", Price: 6, SharedAmong: []string{"u2", "u3"}},
		},
	})
	require.NoError(t, err)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	// Milk: 10/2 = 5. Bread: 6/2 = 3 each for u2 and u3.
	assert.InDelta(t, 8, got.Debts["u2"]["u1"], 0.01)
	assert.InDelta(t, 3, got.Debts["u3"]["u1"], 0.01)
}

func TestAddExpenseDuplicatedParticipant(t *testing.T) {
	store, _, expenses, group := setupServices(t)
	ctx := context.Background()

	// A participant listed twice owes one share per occurrence; the expense
	// persists with the duplicate intact.
	expense, err := expenses.AddExpense(ctx, AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Taxi",
		TotalAmount: 30,
		PaidBy:      "u1",
		SplitMethod: models.SplitEqual,
		SplitAmong:  []string{"u1", "u2", "u2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u2"}, expense.SplitAmong)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, got.Debts["u2"]["u1"], 0.01)

	_, err = expenses.AddExpense(ctx, AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Wine",
		TotalAmount: 9,
		PaidBy:      "u1",
		SplitMethod: models.SplitItemized,
		Items: []models.ExpenseItem{
			{Name: "Wine", Price: 9, SharedAmong: []string{"u2", "u2", "u3"}},
		},
	})
	require.NoError(t, err)

	got, err = store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 26, got.Debts["u2"]["u1"], 0.01)
	assert.InDelta(t, 3, got.Debts["u3"]["u1"], 0.01)

	list, err := expenses.ListExpensesByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddExpenseAccumulatesAcrossExpenses(t *testing.T) {
	store, _, expenses, group := setupServices(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := expenses.AddExpense(ctx, AddExpenseRequest{
			GroupID:     group.ID,
			Description: "Coffee",
			TotalAmount: 20,
			PaidBy:      "u1",
			SplitMethod: models.SplitEqual,
			SplitAmong:  []string{"u1", "u2"},
		})
		require.NoError(t, err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, got.Debts["u2"]["u1"], 0.01)
}

func TestAddExpenseRejections(t *testing.T) {
	tests := []struct {
		name    string
		req     func(groupID string) AddExpenseRequest
		checkFn func(t *testing.T, err error)
	}{
		{
			name: "unknown group",
			req: func(string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: "nope", TotalAmount: 10, PaidBy: "u1",
					SplitMethod: models.SplitEqual,
				}
			},
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, storage.ErrNotFound)
			},
		},
		{
			name: "payer not a member",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 10, PaidBy: "u9",
					SplitMethod: models.SplitEqual,
				}
			},
			checkFn: func(t *testing.T, err error) {
				var m *ledger.MembershipError
				require.ErrorAs(t, err, &m)
				assert.Equal(t, "u9", m.UserID)
			},
		},
		{
			name: "participant not a member",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 10, PaidBy: "u1",
					SplitMethod: models.SplitEqual,
					SplitAmong:  []string{"u1", "u9"},
				}
			},
			checkFn: func(t *testing.T, err error) {
				var m *ledger.MembershipError
				require.ErrorAs(t, err, &m)
				assert.Equal(t, "u9", m.UserID)
			},
		},
		{
			name: "itemized without items",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 10, PaidBy: "u1",
					SplitMethod: models.SplitItemized,
				}
			},
			checkFn: func(t *testing.T, err error) {
				var s *ledger.StructuralError
				assert.ErrorAs(t, err, &s)
			},
		},
		{
			name: "item without sharers",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 10, PaidBy: "u1",
					SplitMethod: models.SplitItemized,
					Items:       []models.ExpenseItem{{Name: "Milk", Price: 10}},
				}
			},
			checkFn: func(t *testing.T, err error) {
				var s *ledger.StructuralError
				assert.ErrorAs(t, err, &s)
			},
		},
		{
			name: "unknown split method",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 10, PaidBy: "u1",
					SplitMethod: "percentage",
				}
			},
			checkFn: func(t *testing.T, err error) {
				var s *ledger.StructuralError
				assert.ErrorAs(t, err, &s)
			},
		},
		{
			name: "non-positive amount",
			req: func(groupID string) AddExpenseRequest {
				return AddExpenseRequest{
					GroupID: groupID, TotalAmount: 0, PaidBy: "u1",
					SplitMethod: models.SplitEqual,
				}
			},
			checkFn: func(t *testing.T, err error) {
				var v *ValidationError
				assert.ErrorAs(t, err, &v)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, expenses, group := setupServices(t)
			ctx := context.Background()

			_, err := expenses.AddExpense(ctx, tt.req(group.ID))
			require.Error(t, err)
			tt.checkFn(t, err)

			// A rejected expense must leave no trace: no expense record,
			// no ledger mutation.
			list, listErr := store.ListExpensesByGroup(ctx, group.ID)
			require.NoError(t, listErr)
			assert.Empty(t, list)

			got, getErr := store.GetGroup(ctx, group.ID)
			require.NoError(t, getErr)
			assert.Empty(t, got.Debts)
		})
	}
}

func TestListExpensesByGroupUnknownGroup(t *testing.T) {
	_, _, expenses, _ := setupServices(t)
	_, err := expenses.ListExpensesByGroup(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
