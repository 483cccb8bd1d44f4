package models

// SplitMethod is the policy for distributing an expense's cost.
type SplitMethod string

const (
	// SplitEqual divides the total amount evenly across a participant list.
	SplitEqual SplitMethod = "equal"

	// SplitItemized divides each line item's price among that item's own sharers.
	SplitItemized SplitMethod = "itemized"
)

// Valid reports whether m is one of the known split methods.
// Any other value is rejected up front; it never reaches the ledger.
func (m SplitMethod) Valid() bool {
	return m == SplitEqual || m == SplitItemized
}

// Expense represents a single recorded expense in a group.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"groupId"`

	// Description is the free-text description of the expense.
	Description string `json:"description"`

	// TotalAmount is the full amount fronted by the payer.
	TotalAmount float64 `json:"totalAmount"`

	// PaidBy is the user ID of the payer. Must be a group member.
	PaidBy string `json:"paidBy"`

	// SplitMethod selects which participant structure below is populated.
	SplitMethod SplitMethod `json:"splitMethod"`

	// SplitAmong is the participant list for an equal split.
	// Defaults to the full group membership when the caller omits it.
	SplitAmong []string `json:"splitAmong,omitempty"`

	// Items is the line-item list for an itemized split.
	Items []ExpenseItem `json:"items,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// ExpenseItem is a single line item on an itemized expense,
// shared among its own list of users.
type ExpenseItem struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	SharedAmong []string `json:"sharedAmong"`
}
