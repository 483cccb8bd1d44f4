package ledger

import "fmt"

// MembershipError reports a user referenced by an expense who is not a member
// of the target group. It is a client fault.
type MembershipError struct {
	// UserID is the offending user.
	UserID string
	// Where names the part of the request the user appeared in
	// ("paidBy", "splitAmong", or an item name).
	Where string
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("user %s in %s is not in the group", e.UserID, e.Where)
}

// StructuralError reports an expense request whose shape is invalid before any
// membership is considered: missing items, an item with no sharers, or an
// unknown split method. It is a client fault.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return e.Reason
}
