package valueobjects

// VariationScope is the set of numbered price-variation slots a grant
// covers. Count 0 means every variation. When Count is positive and no
// explicit indices are listed, slots 1..Count are implied.
type VariationScope struct {
	Count   int   `json:"count"`
	Indices []int `json:"indices,omitempty"`
}

// AllVariations returns the scope covering every price variation.
func AllVariations() VariationScope {
	return VariationScope{}
}

// Variations returns a scope covering exactly the given variation slots.
func Variations(indices ...int) VariationScope {
	out := make([]int, len(indices))
	copy(out, indices)
	return VariationScope{Count: len(out), Indices: out}
}

// FirstVariations returns a scope covering slots 1..n.
func FirstVariations(n int) VariationScope {
	return VariationScope{Count: n}
}

// Covers reports whether the given price variation falls inside the scope.
// Variation 0 conventionally means "non-variable" and is always covered.
func (s VariationScope) Covers(priceID uint) bool {
	if s.Count == 0 || priceID == 0 {
		return true
	}
	if len(s.Indices) > 0 {
		for _, idx := range s.Indices {
			if idx == int(priceID) {
				return true
			}
		}
		return false
	}
	return int(priceID) <= s.Count
}

// IsAll reports whether the scope covers every variation.
func (s VariationScope) IsAll() bool {
	return s.Count == 0
}
