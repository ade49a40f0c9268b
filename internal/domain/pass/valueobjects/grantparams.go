package valueobjects

import (
	"time"
)

// GrantParams is one parameter set of a grant: the validity window, the
// download quota, and the category/variation scopes. Each grant carries two
// of these, the snapshot taken at activation time and the customer-specific
// override set, with a selector choosing which one is authoritative.
type GrantParams struct {
	StartTime   time.Time      `json:"start_time"`
	Duration    Duration       `json:"duration"`
	Limit       int            `json:"download_limit"`
	LimitPeriod QuotaPeriod    `json:"download_limit_period"`
	Categories  CategoryScope  `json:"included_categories"`
	Variations  VariationScope `json:"included_price_variations"`
}

// Expiration computes when the window closes.
func (p GrantParams) Expiration() Expiration {
	return p.Duration.ExpirationFrom(p.StartTime)
}

// IsUnlimitedDownloads reports whether no download quota applies.
func (p GrantParams) IsUnlimitedDownloads() bool {
	return p.Limit == 0
}

// WithStartTime returns a copy of the params pinned to a different start.
// Renewal and upgrade use this to preserve continuity of the window.
func (p GrantParams) WithStartTime(start time.Time) GrantParams {
	p.StartTime = start.UTC()
	return p
}

// IsZero reports whether the params were never set.
func (p GrantParams) IsZero() bool {
	return p.StartTime.IsZero() && (p.Duration == Duration{}) && p.Limit == 0 &&
		p.LimitPeriod == "" && p.Categories.IsEmpty() &&
		p.Variations.Count == 0 && len(p.Variations.Indices) == 0
}
