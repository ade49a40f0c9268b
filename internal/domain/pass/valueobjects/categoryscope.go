package valueobjects

// CategoryScope is the set of product categories a grant covers. The zero
// value covers nothing; AllCategories covers everything.
type CategoryScope struct {
	All bool   `json:"all"`
	IDs []uint `json:"ids,omitempty"`
}

// AllCategories returns the scope covering every category.
func AllCategories() CategoryScope {
	return CategoryScope{All: true}
}

// Categories returns a scope covering exactly the given category ids.
func Categories(ids ...uint) CategoryScope {
	out := make([]uint, len(ids))
	copy(out, ids)
	return CategoryScope{IDs: out}
}

// Includes reports whether a product carrying the given categories falls
// inside the scope. A product matches when any of its categories is covered.
func (s CategoryScope) Includes(productCategories []uint) bool {
	if s.All {
		return true
	}
	for _, want := range s.IDs {
		for _, have := range productCategories {
			if want == have {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether the scope covers nothing.
func (s CategoryScope) IsEmpty() bool {
	return !s.All && len(s.IDs) == 0
}
