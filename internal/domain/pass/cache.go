package pass

import (
	"context"

	vo "allaccess/internal/domain/pass/valueobjects"
)

type cacheContextKey struct{}

// RequestCache memoizes loaded passes and customer registries for the span
// of one request or sweep iteration. It replaces hidden process-wide
// memoization with an explicit object carried on the context; it is not
// safe for concurrent use and must not outlive its request.
type RequestCache struct {
	passes     map[vo.PassID]*Pass
	registries map[uint]*Registry
}

// NewRequestCache returns an empty per-request cache.
func NewRequestCache() *RequestCache {
	return &RequestCache{
		passes:     make(map[vo.PassID]*Pass),
		registries: make(map[uint]*Registry),
	}
}

// ContextWithCache attaches a request cache to the context.
func ContextWithCache(ctx context.Context, cache *RequestCache) context.Context {
	return context.WithValue(ctx, cacheContextKey{}, cache)
}

// CacheFromContext extracts the request cache, or nil when none is attached.
// All cache methods tolerate a nil receiver, so callers need not branch.
func CacheFromContext(ctx context.Context) *RequestCache {
	cache, _ := ctx.Value(cacheContextKey{}).(*RequestCache)
	return cache
}

// Pass returns the memoized pass for an id, or nil.
func (c *RequestCache) Pass(id vo.PassID) *Pass {
	if c == nil {
		return nil
	}
	return c.passes[id]
}

// StorePass memoizes a loaded pass.
func (c *RequestCache) StorePass(p *Pass) {
	if c == nil || p == nil {
		return
	}
	c.passes[p.ID()] = p
}

// DropPass evicts one pass.
func (c *RequestCache) DropPass(id vo.PassID) {
	if c == nil {
		return
	}
	delete(c.passes, id)
}

// Registry returns the memoized registry for a customer, or nil.
func (c *RequestCache) Registry(customerID uint) *Registry {
	if c == nil {
		return nil
	}
	return c.registries[customerID]
}

// StoreRegistry memoizes a customer's registry.
func (c *RequestCache) StoreRegistry(customerID uint, r *Registry) {
	if c == nil {
		return
	}
	c.registries[customerID] = r
}

// InvalidateCustomer evicts a customer's registry and every memoized pass
// belonging to it. Mutating operations call this after a write.
func (c *RequestCache) InvalidateCustomer(customerID uint) {
	if c == nil {
		return
	}
	delete(c.registries, customerID)
	for id, p := range c.passes {
		if p.CustomerID() == customerID {
			delete(c.passes, id)
		}
	}
}
