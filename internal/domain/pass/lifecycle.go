package pass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/order"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/domain/shared/events"
	"allaccess/internal/shared/logger"
)

// errNoMutation signals a mutation callback that found nothing to change;
// the registry is not rewritten.
var errNoMutation = errors.New("no mutation")

// Lifecycle is the domain service driving the pass state machine: loading
// grants, deriving status, and running the activate / expire / renew /
// upgrade / quota transitions against the external order, catalog, and
// registry ports.
type Lifecycle struct {
	orders     order.Repository
	registries RegistryStore
	products   catalog.Repository
	resolver   *catalog.Resolver
	publisher  events.EventPublisher
	logger     logger.Interface

	now func() time.Time

	// downloadFilter, when set, can veto a quota increment for one download.
	downloadFilter func(*Pass) bool
}

func NewLifecycle(
	orders order.Repository,
	registries RegistryStore,
	products catalog.Repository,
	resolver *catalog.Resolver,
	publisher events.EventPublisher,
	log logger.Interface,
) *Lifecycle {
	return &Lifecycle{
		orders:     orders,
		registries: registries,
		products:   products,
		resolver:   resolver,
		publisher:  publisher,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source. Tests pin it to fixed instants.
func (l *Lifecycle) SetClock(now func() time.Time) {
	l.now = now
}

// SetDownloadFilter installs a hook consulted before each quota increment;
// returning false skips the increment while the download still succeeds.
func (l *Lifecycle) SetDownloadFilter(filter func(*Pass) bool) {
	l.downloadFilter = filter
}

// Load fetches a grant and computes its current status. Results are
// memoized in the request cache when one is attached to the context.
func (l *Lifecycle) Load(ctx context.Context, id vo.PassID) (*Pass, error) {
	cache := CacheFromContext(ctx)
	if p := cache.Pass(id); p != nil {
		return p, nil
	}

	p := &Pass{id: id, flags: order.NewPassFlags()}

	o, err := l.orders.GetByID(ctx, id.OrderID)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		// Originating order is gone: structurally invalid, and without it
		// no customer or registry is resolvable.
	case err != nil:
		return nil, fmt.Errorf("failed to load order %d: %w", id.OrderID, err)
	default:
		p.order = o
		p.customerID = o.CustomerID()

		flags, err := l.orders.GetFlags(ctx, id.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pass flags for order %d: %w", id.OrderID, err)
		}
		p.flags = flags

		registry, err := l.registry(ctx, o.CustomerID())
		if err != nil {
			return nil, err
		}
		p.occupant = registry.Lookup(id.Key())
	}

	if _, _, err := l.Refresh(ctx, p); err != nil {
		return nil, err
	}
	cache.StorePass(p)
	return p, nil
}

// CustomerPasses returns the customer's current grants in storage order,
// most-recently-activated first, each with a freshly computed status.
func (l *Lifecycle) CustomerPasses(ctx context.Context, customerID uint) ([]*Pass, error) {
	registry, err := l.registry(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries := registry.Entries()
	passes := make([]*Pass, 0, len(entries))
	for _, entry := range entries {
		p, err := l.Load(ctx, entry.ID())
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, nil
}

// Refresh recomputes the grant's status and returns it along with whether
// it differs from the previously cached value on this instance. A change
// publishes pass.status_changed so external caches can invalidate. When the
// grant computes active, the quota counter is rolled over if a period
// boundary has passed.
func (l *Lifecycle) Refresh(ctx context.Context, p *Pass) (vo.PassStatus, bool, error) {
	status, err := l.computeStatus(ctx, p)
	if err != nil {
		return p.status, false, err
	}

	if status == vo.StatusActive {
		if err := l.maybeResetDownloadsUsed(ctx, p); err != nil {
			return p.status, false, err
		}
	}

	prev := p.status
	p.status = status
	changed := prev != "" && prev != status
	if changed {
		l.publish(NewPassStatusChangedEvent(p.id, p.customerID, prev, status))
	}
	return status, changed, nil
}

// computeStatus derives the grant's status from the order, the order-level
// flags, and the customer registry. Checks run in a fixed order; the first
// decisive one wins.
func (l *Lifecycle) computeStatus(ctx context.Context, p *Pass) (vo.PassStatus, error) {
	key := p.id.Key()

	// Structural validity: order present and paid, product configured as a
	// pass product, and the claimed pair actually purchased.
	if p.order == nil || !p.order.Status().Qualifies() {
		return vo.StatusInvalid, nil
	}
	eligible, err := l.isPassProduct(ctx, p.id.ProductID)
	if err != nil {
		return "", err
	}
	if !eligible || !p.order.HasItem(key) {
		return vo.StatusInvalid, nil
	}

	// A grant superseded by an upgrade stays upgraded for good.
	if entry := p.Entry(); entry != nil && entry.IsPriorOf != "" {
		return vo.StatusUpgraded, nil
	}

	// Registry presence. An active-flagged order with no registry entry is
	// an orphaned half; drop the flag so the grant can be re-activated.
	if p.occupant == nil {
		if p.flags.IsActivated(key) {
			p.flags.ClearActivated(key)
			if err := l.orders.SaveFlags(ctx, p.id.OrderID, p.flags); err != nil {
				l.logger.Warnw("failed to clear orphaned active flag",
					"pass_id", p.id.String(), "error", err)
			}
		}
		return vo.StatusInvalid, nil
	}

	// Supersession: a different order holds the key now.
	if p.occupant.OrderID != p.id.OrderID {
		later, err := l.orders.GetByID(ctx, p.occupant.OrderID)
		if errors.Is(err, order.ErrOrderNotFound) {
			return vo.StatusInvalid, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to load superseding order %d: %w", p.occupant.OrderID, err)
		}
		if !later.Status().Qualifies() {
			return vo.StatusInvalid, nil
		}
		if later.PurchasedAt().After(p.order.PurchasedAt()) {
			return vo.StatusRenewed, nil
		}
		return vo.StatusUpcoming, nil
	}

	// The sticky expired flag overrides everything below, including a
	// still-open (or rolled-back) time window.
	if p.flags.IsExpired(key) {
		return vo.StatusExpired, nil
	}

	if p.occupant.Expiration().Elapsed(l.now()) {
		if !p.flags.IsActivated(key) {
			// Never activated within its window: a renewal in waiting.
			return vo.StatusUpcoming, nil
		}
		return vo.StatusExpired, nil
	}

	if !p.flags.IsActivated(key) {
		return vo.StatusUpcoming, nil
	}

	// Cross-check the registry fields against the grant's own identity as a
	// defense against stale documents.
	if p.occupant.ProductID != p.id.ProductID || p.occupant.PriceID != p.id.PriceID {
		return vo.StatusInvalid, nil
	}
	return vo.StatusActive, nil
}

func (l *Lifecycle) isPassProduct(ctx context.Context, productID uint) (bool, error) {
	cfg, err := l.products.GetPassConfig(ctx, productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load pass config for product %d: %w", productID, err)
	}
	return cfg.Enabled, nil
}

// registry returns the customer's registry, memoized per request.
func (l *Lifecycle) registry(ctx context.Context, customerID uint) (*Registry, error) {
	cache := CacheFromContext(ctx)
	if r := cache.Registry(customerID); r != nil {
		return r, nil
	}
	r, err := l.registries.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pass registry for customer %d: %w", customerID, err)
	}
	cache.StoreRegistry(customerID, r)
	return r, nil
}

// freshRegistry re-reads the registry from storage, bypassing the request
// cache. Every mutation starts here; a hash mismatch against the cached
// copy is logged, not failed, since the check is best effort.
func (l *Lifecycle) freshRegistry(ctx context.Context, customerID uint) (*Registry, error) {
	cache := CacheFromContext(ctx)
	cached := cache.Registry(customerID)

	fresh, err := l.registries.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pass registry for customer %d: %w", customerID, err)
	}
	if cached != nil && cached.Hash() != fresh.Hash() {
		l.logger.Debugw("pass registry changed since last read",
			"customer_id", customerID)
	}
	cache.StoreRegistry(customerID, fresh)
	return fresh, nil
}

// mutateRegistry runs a read-modify-write on the customer's registry with a
// preceding freshness re-read. The callback may return errNoMutation to
// skip the write; any other error aborts without writing.
func (l *Lifecycle) mutateRegistry(ctx context.Context, customerID uint, fn func(*Registry) error) (*Registry, error) {
	registry, err := l.freshRegistry(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := fn(registry); err != nil {
		if errors.Is(err, errNoMutation) {
			return registry, nil
		}
		return nil, err
	}
	if err := l.registries.Save(ctx, customerID, registry); err != nil {
		return nil, fmt.Errorf("failed to save pass registry for customer %d: %w", customerID, err)
	}

	cache := CacheFromContext(ctx)
	cache.InvalidateCustomer(customerID)
	cache.StoreRegistry(customerID, registry)
	return registry, nil
}

func (l *Lifecycle) publish(event events.DomainEvent) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(event); err != nil {
		l.logger.Warnw("failed to publish domain event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err)
	}
}
