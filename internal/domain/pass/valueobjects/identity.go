package valueobjects

import (
	"fmt"
	"strconv"
	"strings"
)

// PassKey identifies the customer-level registry slot for a grant: one
// product plus one price variation. Exactly one current grant occupies a key
// per customer at any time.
type PassKey struct {
	ProductID uint
	PriceID   uint
}

// NewPassKey builds a key. ProductID must be non-zero; PriceID 0 means the
// product is non-variable.
func NewPassKey(productID, priceID uint) (PassKey, error) {
	if productID == 0 {
		return PassKey{}, fmt.Errorf("product ID is required")
	}
	return PassKey{ProductID: productID, PriceID: priceID}, nil
}

func (k PassKey) String() string {
	return fmt.Sprintf("%d_%d", k.ProductID, k.PriceID)
}

// ParsePassKey parses the "product_price" storage form of a key.
func ParsePassKey(raw string) (PassKey, error) {
	parts := strings.Split(raw, "_")
	if len(parts) != 2 {
		return PassKey{}, fmt.Errorf("malformed pass key: %q", raw)
	}
	productID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || productID == 0 {
		return PassKey{}, fmt.Errorf("malformed pass key product id: %q", raw)
	}
	priceID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return PassKey{}, fmt.Errorf("malformed pass key price id: %q", raw)
	}
	return PassKey{ProductID: uint(productID), PriceID: uint(priceID)}, nil
}

// PassID is the full identity of a grant: the registry key plus the
// originating order. A repeat purchase of the same key is a renewal or
// upgrade of the occupant, never a second independent grant.
type PassID struct {
	OrderID   uint
	ProductID uint
	PriceID   uint
}

// NewPassID builds a grant identity. Order and product must be non-zero.
func NewPassID(orderID, productID, priceID uint) (PassID, error) {
	if orderID == 0 {
		return PassID{}, fmt.Errorf("order ID is required")
	}
	if productID == 0 {
		return PassID{}, fmt.Errorf("product ID is required")
	}
	return PassID{OrderID: orderID, ProductID: productID, PriceID: priceID}, nil
}

// Key returns the customer-level registry key of the grant.
func (id PassID) Key() PassKey {
	return PassKey{ProductID: id.ProductID, PriceID: id.PriceID}
}

func (id PassID) String() string {
	return fmt.Sprintf("%d_%d_%d", id.OrderID, id.ProductID, id.PriceID)
}

// IsZero reports whether the identity is unset.
func (id PassID) IsZero() bool {
	return id == PassID{}
}

// ParsePassID parses the "order_product_price" storage form of a grant id.
func ParsePassID(raw string) (PassID, error) {
	parts := strings.Split(raw, "_")
	if len(parts) != 3 {
		return PassID{}, fmt.Errorf("malformed pass id: %q", raw)
	}
	nums := make([]uint, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return PassID{}, fmt.Errorf("malformed pass id: %q", raw)
		}
		nums[i] = uint(n)
	}
	return NewPassID(nums[0], nums[1], nums[2])
}
