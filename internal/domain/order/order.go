// Package order models the external commerce system's orders as the pass
// core consumes them: read-mostly line-item data plus one small per-order
// annotation recording which pass keys were activated or expired by the
// order.
package order

import (
	"fmt"
	"time"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// Status is the payment status of an order.
type Status string

const (
	StatusPending           Status = "pending"
	StatusComplete          Status = "complete"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusRefunded          Status = "refunded"
	StatusFailed            Status = "failed"
	StatusAbandoned         Status = "abandoned"
)

// Qualifies reports whether the payment status entitles the buyer to the
// purchased passes.
func (s Status) Qualifies() bool {
	return s == StatusComplete || s == StatusPartiallyRefunded
}

var ValidStatuses = map[Status]bool{
	StatusPending:           true,
	StatusComplete:          true,
	StatusPartiallyRefunded: true,
	StatusRefunded:          true,
	StatusFailed:            true,
	StatusAbandoned:         true,
}

// Item is one purchased line item.
type Item struct {
	ProductID uint
	PriceID   uint
}

// Key returns the pass registry key the line item maps to.
func (i Item) Key() vo.PassKey {
	return vo.PassKey{ProductID: i.ProductID, PriceID: i.PriceID}
}

// Order is a completed purchase. The pass core treats it as external data:
// it is never mutated here beyond its pass-flag annotation.
type Order struct {
	id          uint
	customerID  uint
	status      Status
	purchasedAt time.Time
	items       []Item
}

// ReconstructOrder rebuilds an order from persistence.
func ReconstructOrder(id, customerID uint, status Status, purchasedAt time.Time, items []Item) (*Order, error) {
	if id == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return &Order{
		id:          id,
		customerID:  customerID,
		status:      status,
		purchasedAt: purchasedAt.UTC(),
		items:       items,
	}, nil
}

func (o *Order) ID() uint {
	return o.id
}

func (o *Order) CustomerID() uint {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

// PurchasedAt returns the purchase timestamp in UTC.
func (o *Order) PurchasedAt() time.Time {
	return o.purchasedAt
}

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// HasItem reports whether the order contains a line item for the given key.
func (o *Order) HasItem(key vo.PassKey) bool {
	for _, item := range o.items {
		if item.Key() == key {
			return true
		}
	}
	return false
}
