package pass

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// RegistryEntry is one grant's record in the customer registry. Fields are
// exported for JSON storage under the customer meta key; the aggregate logic
// lives on Pass and Lifecycle, not here.
type RegistryEntry struct {
	OrderID   uint `json:"order_id"`
	ProductID uint `json:"product_id"`
	PriceID   uint `json:"price_id"`

	// Two parallel parameter sets with a selector: the snapshot taken at
	// activation time, and the admin-tailored customer overrides.
	ActivationParams  vo.GrantParams `json:"activation_params"`
	CustomerParams    vo.GrantParams `json:"customer_params"`
	UseCustomerParams bool           `json:"use_customer_params"`

	DownloadsUsed          int       `json:"downloads_used"`
	DownloadsUsedLastReset time.Time `json:"downloads_used_last_reset"`

	// RenewalOrderIDs is the ordered queue of later orders for the same key
	// waiting to take over at expiry. Oldest first.
	RenewalOrderIDs []uint `json:"renewal_order_ids,omitempty"`

	// Upgrade lineage. PriorPassIDs lists the grants this one superseded;
	// IsPriorOf points at the grant this one was superseded by.
	PriorPassIDs []string `json:"prior_pass_ids,omitempty"`
	IsPriorOf    string   `json:"is_prior_of,omitempty"`
}

// ID returns the grant identity of the entry.
func (e *RegistryEntry) ID() vo.PassID {
	return vo.PassID{OrderID: e.OrderID, ProductID: e.ProductID, PriceID: e.PriceID}
}

// Key returns the registry key the entry occupies.
func (e *RegistryEntry) Key() vo.PassKey {
	return vo.PassKey{ProductID: e.ProductID, PriceID: e.PriceID}
}

// Params returns the authoritative parameter set per the selector.
func (e *RegistryEntry) Params() vo.GrantParams {
	if e.UseCustomerParams {
		return e.CustomerParams
	}
	return e.ActivationParams
}

// Expiration returns when the authoritative window closes.
func (e *RegistryEntry) Expiration() vo.Expiration {
	return e.Params().Expiration()
}

// QueueRenewalOrder appends an order to the renewal queue, ignoring
// duplicates. Reports whether the queue changed.
func (e *RegistryEntry) QueueRenewalOrder(orderID uint) bool {
	for _, id := range e.RenewalOrderIDs {
		if id == orderID {
			return false
		}
	}
	e.RenewalOrderIDs = append(e.RenewalOrderIDs, orderID)
	return true
}

// PopRenewalOrder removes and returns the oldest queued renewal order.
func (e *RegistryEntry) PopRenewalOrder() (uint, bool) {
	if len(e.RenewalOrderIDs) == 0 {
		return 0, false
	}
	id := e.RenewalOrderIDs[0]
	e.RenewalOrderIDs = append([]uint(nil), e.RenewalOrderIDs[1:]...)
	return id, true
}

// Registry is one customer's grant mapping: an ordered list of entries,
// newest first. Exactly one entry occupies a given key at a time; older
// generations are reachable only through lineage pointers, never through
// the registry itself.
type Registry struct {
	entries []*RegistryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ReconstructRegistry decodes the stored JSON document. Nil or empty input
// yields an empty registry.
func ReconstructRegistry(raw []byte) (*Registry, error) {
	if len(raw) == 0 {
		return NewRegistry(), nil
	}
	var entries []*RegistryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode pass registry: %w", err)
	}
	return &Registry{entries: entries}, nil
}

// Encode serializes the registry for storage.
func (r *Registry) Encode() ([]byte, error) {
	if len(r.entries) == 0 {
		return json.Marshal([]*RegistryEntry{})
	}
	return json.Marshal(r.entries)
}

// Lookup returns the current occupant of a key, or nil.
func (r *Registry) Lookup(key vo.PassKey) *RegistryEntry {
	for _, e := range r.entries {
		if e.Key() == key {
			return e
		}
	}
	return nil
}

// Put installs an entry as the current occupant of its key: any previous
// occupant is dropped and the entry is prepended so the list stays ordered
// newest-activated first.
func (r *Registry) Put(entry *RegistryEntry) {
	r.Remove(entry.Key())
	r.entries = append([]*RegistryEntry{entry}, r.entries...)
}

// MoveToFront reorders the occupant of the key to the head of the list.
func (r *Registry) MoveToFront(key vo.PassKey) {
	for i, e := range r.entries {
		if e.Key() == key {
			if i == 0 {
				return
			}
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.entries = append([]*RegistryEntry{e}, r.entries...)
			return
		}
	}
}

// Remove drops the occupant of a key. Reports whether one was present.
func (r *Registry) Remove(key vo.PassKey) bool {
	for i, e := range r.entries {
		if e.Key() == key {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByOrder drops every entry originating from the given order and
// returns the keys that were removed. Used by the order-deleted cascade.
func (r *Registry) RemoveByOrder(orderID uint) []vo.PassKey {
	var removed []vo.PassKey
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.OrderID == orderID {
			removed = append(removed, e.Key())
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed
}

// PruneRenewalOrder removes the order from every entry's renewal queue.
// Reports whether any queue changed.
func (r *Registry) PruneRenewalOrder(orderID uint) bool {
	changed := false
	for _, e := range r.entries {
		kept := e.RenewalOrderIDs[:0]
		for _, id := range e.RenewalOrderIDs {
			if id == orderID {
				changed = true
				continue
			}
			kept = append(kept, id)
		}
		e.RenewalOrderIDs = kept
	}
	return changed
}

// Entries returns the entries in storage order, newest-activated first.
func (r *Registry) Entries() []*RegistryEntry {
	out := make([]*RegistryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Hash returns the FNV-1a hash of the canonical encoding. Mutating
// operations compare hashes before writing to detect staleness from
// caching layers; best effort, not a lock.
func (r *Registry) Hash() uint64 {
	raw, err := r.Encode()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(raw)
	return h.Sum64()
}
