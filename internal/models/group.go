package models

// Group represents a named set of users who split expenses together,
// along with the accumulated pairwise debts between them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (unique across all groups).
	Name string `json:"name"`

	// Members is the list of user IDs in this group.
	// Duplicates are collapsed when members are added.
	Members []string `json:"members"`

	// Debts maps debtor user ID -> creditor user ID -> accumulated amount owed.
	// Absence of an entry means zero owed. Entries are created lazily on first
	// contribution and updated by accumulation, never by replacement.
	Debts map[string]map[string]float64 `json:"debts"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// MemberSet returns the group's members as a set for O(1) membership checks.
func (g *Group) MemberSet() map[string]struct{} {
	set := make(map[string]struct{}, len(g.Members))
	for _, id := range g.Members {
		set[id] = struct{}{}
	}
	return set
}

// HasMember reports whether the given user ID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMembers appends the given user IDs to the member list, collapsing duplicates.
func (g *Group) AddMembers(userIDs []string) {
	seen := g.MemberSet()
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		g.Members = append(g.Members, id)
	}
}
