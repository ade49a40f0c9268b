package pass

import (
	"fmt"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// StatusLabel returns the display string for a status.
func StatusLabel(status vo.PassStatus) string {
	return status.Label()
}

// DownloadLimitString renders the grant's quota for display, e.g.
// "5 per day" or "Unlimited".
func DownloadLimitString(p *Pass) string {
	params := p.Params()
	if params.IsUnlimitedDownloads() {
		return "Unlimited"
	}
	return fmt.Sprintf("%d %s", params.Limit, params.LimitPeriod.Label())
}

// DurationString renders the grant's validity window for display, e.g.
// "3 months" or "Never Expires".
func DurationString(p *Pass) string {
	duration := p.Params().Duration
	if duration.IsUnlimited() {
		return "Never Expires"
	}
	return duration.String()
}
