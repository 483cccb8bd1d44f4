// Package ledger computes how an expense distributes across its participants
// and merges the resulting per-user shares into a group's pairwise debt map.
//
// The package is pure: it assumes the caller has already validated membership
// (see ValidateEqualSplit, ValidateItemizedSplit) and it never persists
// anything. Amounts use floating-point division with no remainder handling;
// callers round for display downstream.
package ledger

import (
	"github.com/billsyncorg/billsync/internal/models"
)

// Delta is a set of debt increments keyed by debtor then creditor.
// It has the same shape as Group.Debts but holds only one expense's
// contribution.
type Delta map[string]map[string]float64

// add merges amount into d[debtor][creditor].
func (d Delta) add(debtor, creditor string, amount float64) {
	inner, ok := d[debtor]
	if !ok {
		inner = make(map[string]float64)
		d[debtor] = inner
	}
	inner[creditor] += amount
}

// Contributions computes the debt increments one expense produces.
//
// Equal split: each participant other than the payer owes
// totalAmount/len(splitAmong) to the payer. Itemized split: for each item,
// each sharer other than the payer owes price/len(sharedAmong) to the payer;
// items are independent, so a user in several items accumulates once per item.
// The payer never owes themselves.
func Contributions(expense *models.Expense) (Delta, error) {
	delta := make(Delta)

	switch expense.SplitMethod {
	case models.SplitEqual:
		share := expense.TotalAmount / float64(len(expense.SplitAmong))
		for _, userID := range expense.SplitAmong {
			if userID == expense.PaidBy {
				continue
			}
			delta.add(userID, expense.PaidBy, share)
		}
	case models.SplitItemized:
		for _, item := range expense.Items {
			share := item.Price / float64(len(item.SharedAmong))
			for _, userID := range item.SharedAmong {
				if userID == expense.PaidBy {
					continue
				}
				delta.add(userID, expense.PaidBy, share)
			}
		}
	default:
		return nil, &StructuralError{Reason: "unknown split method: " + string(expense.SplitMethod)}
	}

	return delta, nil
}

// Apply merges the expense's contributions into the group's in-memory debt
// map and returns the delta that was applied. The merge is strictly additive:
// existing entries are never removed or replaced. Persisting the update is
// the caller's responsibility.
func Apply(group *models.Group, expense *models.Expense) (Delta, error) {
	delta, err := Contributions(expense)
	if err != nil {
		return nil, err
	}

	if group.Debts == nil {
		group.Debts = make(map[string]map[string]float64)
	}
	for debtor, owed := range delta {
		inner, ok := group.Debts[debtor]
		if !ok {
			inner = make(map[string]float64)
			group.Debts[debtor] = inner
		}
		for creditor, amount := range owed {
			inner[creditor] += amount
		}
	}

	return delta, nil
}
