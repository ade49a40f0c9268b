// Package pass implements the pass lifecycle state machine: one customer's
// grant of broad download access, identified by originating order plus
// product plus price variation. Status is derived on demand from the order,
// the order-level flags, and the customer registry; it is never stored.
package pass

import (
	"time"

	"allaccess/internal/domain/order"
	vo "allaccess/internal/domain/pass/valueobjects"
)

// Pass is one loaded grant: the identity, the external data it derives its
// status from, and the last computed status. Instances are produced by
// Lifecycle.Load and are request-scoped; they are not safe for concurrent
// use.
type Pass struct {
	id         vo.PassID
	customerID uint

	// order is nil when the originating order is gone.
	order *order.Order
	flags *order.PassFlags

	// occupant is the registry entry currently holding this pass's key,
	// which may belong to a different (later) order. It is nil when the key
	// is absent from the registry.
	occupant *RegistryEntry

	status vo.PassStatus
}

// ID returns the grant identity.
func (p *Pass) ID() vo.PassID {
	return p.id
}

// Key returns the customer-level registry key.
func (p *Pass) Key() vo.PassKey {
	return p.id.Key()
}

// CustomerID returns the owning customer, or 0 when the originating order is
// gone and no customer is resolvable.
func (p *Pass) CustomerID() uint {
	return p.customerID
}

// Order returns the originating order, or nil when it is gone.
func (p *Pass) Order() *order.Order {
	return p.order
}

// Status returns the last computed status. Lifecycle.Refresh recomputes it.
func (p *Pass) Status() vo.PassStatus {
	return p.status
}

// Entry returns this grant's own registry entry, or nil when the grant does
// not currently occupy its key.
func (p *Pass) Entry() *RegistryEntry {
	if p.occupant == nil || p.occupant.OrderID != p.id.OrderID {
		return nil
	}
	return p.occupant
}

// Params returns the authoritative parameter set, or the zero params when
// the grant has no registry entry.
func (p *Pass) Params() vo.GrantParams {
	entry := p.Entry()
	if entry == nil {
		return vo.GrantParams{}
	}
	return entry.Params()
}

// StartTime returns the start of the authoritative window.
func (p *Pass) StartTime() time.Time {
	return p.Params().StartTime
}

// Expiration returns when the authoritative window closes. A grant with no
// registry entry reports Never; callers should branch on Entry first.
func (p *Pass) Expiration() vo.Expiration {
	return p.Params().Expiration()
}

// DownloadsUsed returns the quota counter's current value.
func (p *Pass) DownloadsUsed() int {
	entry := p.Entry()
	if entry == nil {
		return 0
	}
	return entry.DownloadsUsed
}

// DownloadsRemaining returns how many downloads remain in the current quota
// period, and false when the grant has no limit.
func (p *Pass) DownloadsRemaining() (int, bool) {
	params := p.Params()
	if params.IsUnlimitedDownloads() {
		return 0, false
	}
	remaining := params.Limit - p.DownloadsUsed()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// HasQuotaLeft reports whether a download can still be attributed to the
// grant in the current period.
func (p *Pass) HasQuotaLeft() bool {
	remaining, limited := p.DownloadsRemaining()
	return !limited || remaining > 0
}

// Covers reports whether the grant's scopes include the desired product
// categories and price variation.
func (p *Pass) Covers(productCategories []uint, priceID uint) bool {
	params := p.Params()
	return params.Categories.Includes(productCategories) && params.Variations.Covers(priceID)
}
