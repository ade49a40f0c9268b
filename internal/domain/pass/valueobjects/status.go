package valueobjects

// PassStatus is the derived lifecycle status of a pass grant. It is computed
// from the originating order, the order-level activation flags, and the
// customer registry; it is never stored directly.
type PassStatus string

const (
	// StatusInvalid marks a structurally broken grant: missing or unpaid
	// order, non-eligible product, or a product/variation pair that does
	// not appear in the order. Terminal.
	StatusInvalid PassStatus = "invalid"
	// StatusActive grants download access.
	StatusActive PassStatus = "active"
	// StatusExpired means the time window elapsed and the order-level
	// record was flagged. Sticky: an expired grant never reactivates.
	StatusExpired PassStatus = "expired"
	// StatusUpgraded marks a grant superseded by an upgrade to another pass.
	StatusUpgraded PassStatus = "upgraded"
	// StatusRenewed marks a stale generation whose key was taken over by a
	// later order.
	StatusRenewed PassStatus = "renewed"
	// StatusUpcoming marks a grant queued behind a still-active occupant of
	// the same key, or one whose order has not been processed yet.
	StatusUpcoming PassStatus = "upcoming"
	// StatusDisabled is produced only at the access-evaluation boundary when
	// the license gate reports the grant disabled.
	StatusDisabled PassStatus = "disabled"
)

func (s PassStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition can ever make the grant
// active again under the same order.
func (s PassStatus) IsTerminal() bool {
	return s == StatusInvalid || s == StatusExpired || s == StatusUpgraded || s == StatusRenewed
}

// CanDownload reports whether the status grants download access.
func (s PassStatus) CanDownload() bool {
	return s == StatusActive
}

var ValidStatuses = map[PassStatus]bool{
	StatusInvalid:  true,
	StatusActive:   true,
	StatusExpired:  true,
	StatusUpgraded: true,
	StatusRenewed:  true,
	StatusUpcoming: true,
	StatusDisabled: true,
}

// Label returns the human-readable display string for the status.
func (s PassStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusExpired:
		return "Expired"
	case StatusUpgraded:
		return "Upgraded"
	case StatusRenewed:
		return "Renewed"
	case StatusUpcoming:
		return "Upcoming"
	case StatusDisabled:
		return "Disabled"
	default:
		return "Invalid"
	}
}
