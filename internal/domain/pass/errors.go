package pass

import "errors"

// Business-rule rejections. These are returned as values and branched on
// with errors.Is; none of them represents a system failure.
var (
	// ErrNotEligible means the product is not configured as a pass product,
	// or the claimed product/variation pair does not appear in the order.
	ErrNotEligible = errors.New("product is not eligible for a pass")

	// ErrOrderNotPaid means the originating order's payment status does not
	// qualify for activation.
	ErrOrderNotPaid = errors.New("order payment status does not qualify")

	// ErrAlreadyActive means the grant is already activated and present in
	// the customer registry.
	ErrAlreadyActive = errors.New("pass is already active")

	// ErrExpired means the order-level record carries the sticky expired
	// flag for this key. An expired grant can never be reactivated; renewal
	// requires a new order.
	ErrExpired = errors.New("pass has expired and cannot be reactivated")

	// ErrNotExpired means the time window has not elapsed yet.
	ErrNotExpired = errors.New("pass is not expired")

	// ErrNotActivated means the order-level record does not show the key as
	// activated.
	ErrNotActivated = errors.New("pass was never activated")

	// ErrNotActive means the operation requires an active grant.
	ErrNotActive = errors.New("pass is not active")

	// ErrNoRenewalOrders means no queued renewal order is available.
	ErrNoRenewalOrders = errors.New("no renewal orders queued")

	// ErrAlreadyUpgraded means the grant was already superseded by an
	// upgrade.
	ErrAlreadyUpgraded = errors.New("pass was already upgraded")

	// ErrUpgradeTargetHasPriors means the upgrade target already carries
	// prior lineage and cannot be upgraded to twice.
	ErrUpgradeTargetHasPriors = errors.New("upgrade target already has prior passes")

	// ErrStaleRegistry means the registry changed underneath a mutation's
	// freshness check.
	ErrStaleRegistry = errors.New("customer pass registry is stale")
)
