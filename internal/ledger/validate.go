package ledger

import (
	"github.com/billsyncorg/billsync/internal/models"
)

// ValidateEqualSplit checks that every participant of an equal split is a
// member of the group. Participants are checked in their given order and the
// first failure is the one reported.
func ValidateEqualSplit(participants []string, group *models.Group) error {
	if len(participants) == 0 {
		return &StructuralError{Reason: "equal split must have at least one participant"}
	}
	members := group.MemberSet()
	for _, userID := range participants {
		if _, ok := members[userID]; !ok {
			return &MembershipError{UserID: userID, Where: "splitAmong"}
		}
	}
	return nil
}

// ValidateItemizedSplit checks the structural rules for an itemized split and
// the group membership of every sharer. Items are checked in sequence, and
// within an item sharers are checked in sequence; the first failure wins.
func ValidateItemizedSplit(items []models.ExpenseItem, group *models.Group) error {
	if len(items) == 0 {
		return &StructuralError{Reason: "itemized split must have items with sharedAmong"}
	}
	members := group.MemberSet()
	for _, item := range items {
		if len(item.SharedAmong) == 0 {
			return &StructuralError{Reason: "each item must have at least one user sharing it"}
		}
		for _, userID := range item.SharedAmong {
			if _, ok := members[userID]; !ok {
				return &MembershipError{UserID: userID, Where: "item " + item.Name}
			}
		}
	}
	return nil
}
