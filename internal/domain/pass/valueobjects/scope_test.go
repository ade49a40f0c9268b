package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryScopeIncludes(t *testing.T) {
	tests := []struct {
		name       string
		scope      CategoryScope
		categories []uint
		want       bool
	}{
		{name: "all covers anything", scope: AllCategories(), categories: []uint{99}, want: true},
		{name: "all covers uncategorized", scope: AllCategories(), categories: nil, want: true},
		{name: "explicit match", scope: Categories(5, 7), categories: []uint{7}, want: true},
		{name: "any intersection wins", scope: Categories(5), categories: []uint{1, 5, 9}, want: true},
		{name: "explicit miss", scope: Categories(5, 7), categories: []uint{8}, want: false},
		{name: "empty scope covers nothing", scope: CategoryScope{}, categories: []uint{1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Includes(tt.categories))
		})
	}
}

func TestVariationScopeCovers(t *testing.T) {
	tests := []struct {
		name    string
		scope   VariationScope
		priceID uint
		want    bool
	}{
		{name: "count zero covers any", scope: AllVariations(), priceID: 9, want: true},
		{name: "non-variable always covered", scope: FirstVariations(2), priceID: 0, want: true},
		{name: "within implied range", scope: FirstVariations(3), priceID: 3, want: true},
		{name: "beyond implied range", scope: FirstVariations(3), priceID: 4, want: false},
		{name: "explicit index match", scope: Variations(2, 5), priceID: 5, want: true},
		{name: "explicit index miss", scope: Variations(2, 5), priceID: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Covers(tt.priceID))
		})
	}
}
