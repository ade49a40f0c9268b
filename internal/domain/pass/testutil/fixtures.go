// Package testutil provides in-memory fakes of the external ports so the
// state machine can be exercised without a database.
package testutil

import (
	"context"
	"sync"
	"time"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/order"
	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/domain/shared/events"
)

// OrderStore is an in-memory order.Repository.
type OrderStore struct {
	mu     sync.Mutex
	orders map[uint]*order.Order
	flags  map[uint]*order.PassFlags
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[uint]*order.Order),
		flags:  make(map[uint]*order.PassFlags),
	}
}

// AddOrder registers an order; panics on invalid fixture data.
func (s *OrderStore) AddOrder(id, customerID uint, status order.Status, purchasedAt time.Time, items ...order.Item) *order.Order {
	o, err := order.ReconstructOrder(id, customerID, status, purchasedAt, items)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id] = o
	return o
}

// RemoveOrder deletes an order, simulating an order-deletion in the store.
func (s *OrderStore) RemoveOrder(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}

func (s *OrderStore) GetByID(_ context.Context, id uint) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderStore) GetFlags(_ context.Context, orderID uint) (*order.PassFlags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flags[orderID]; ok {
		return order.ReconstructPassFlags(f.ActivatedKeys(), f.ExpiredKeys()), nil
	}
	return order.NewPassFlags(), nil
}

func (s *OrderStore) SaveFlags(_ context.Context, orderID uint, flags *order.PassFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[orderID] = order.ReconstructPassFlags(flags.ActivatedKeys(), flags.ExpiredKeys())
	return nil
}

func (s *OrderStore) ListOrderIDsWithActivePasses(_ context.Context) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint
	for id, f := range s.flags {
		if f.HasActive() {
			out = append(out, id)
		}
	}
	return out, nil
}

// RegistryStore is an in-memory pass.RegistryStore persisting encoded
// documents, so stored state round-trips through JSON like the real store.
type RegistryStore struct {
	mu   sync.Mutex
	docs map[uint][]byte
}

func NewRegistryStore() *RegistryStore {
	return &RegistryStore{docs: make(map[uint][]byte)}
}

func (s *RegistryStore) Get(_ context.Context, customerID uint) (*pass.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pass.ReconstructRegistry(s.docs[customerID])
}

func (s *RegistryStore) Save(_ context.Context, customerID uint, registry *pass.Registry) error {
	raw, err := registry.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[customerID] = raw
	return nil
}

// Catalog is an in-memory catalog.Repository.
type Catalog struct {
	mu         sync.Mutex
	configs    map[uint]*catalog.ProductPassConfig
	categories map[uint][]uint
	variations map[uint]int
}

func NewCatalog() *Catalog {
	return &Catalog{
		configs:    make(map[uint]*catalog.ProductPassConfig),
		categories: make(map[uint][]uint),
		variations: make(map[uint]int),
	}
}

// AddPassProduct registers an enabled pass product with its config.
func (c *Catalog) AddPassProduct(cfg catalog.ProductPassConfig) {
	cfg.Enabled = true
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs[cfg.ProductID] = &cfg
}

// AddProduct registers an ordinary product with categories only.
func (c *Catalog) AddProduct(productID uint, categories ...uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs[productID] = &catalog.ProductPassConfig{ProductID: productID}
	c.categories[productID] = categories
}

// SetCategories assigns categories to a product.
func (c *Catalog) SetCategories(productID uint, categories ...uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories[productID] = categories
}

// SetVariationCount assigns the price-variation count of a product.
func (c *Catalog) SetVariationCount(productID uint, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variations[productID] = count
}

func (c *Catalog) GetPassConfig(_ context.Context, productID uint) (*catalog.ProductPassConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.configs[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	out := *cfg
	return &out, nil
}

func (c *Catalog) ProductCategories(_ context.Context, productID uint) ([]uint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.configs[productID]; !ok {
		return nil, catalog.ErrProductNotFound
	}
	return c.categories[productID], nil
}

func (c *Catalog) VariationCount(_ context.Context, productID uint) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.configs[productID]; !ok {
		return 0, catalog.ErrProductNotFound
	}
	return c.variations[productID], nil
}

// EventRecorder is an events.EventPublisher collecting everything published.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Publish(event events.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *EventRecorder) PublishAll(evs []events.DomainEvent) error {
	for _, e := range evs {
		if err := r.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

// Events returns everything published so far.
func (r *EventRecorder) Events() []events.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the published events of one type, in order.
func (r *EventRecorder) OfType(eventType string) []events.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.DomainEvent
	for _, e := range r.events {
		if e.GetEventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to an instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// MonthlyPassConfig is a ready-made pass product config: one month, five
// downloads per day, all categories and variations.
func MonthlyPassConfig(productID uint) catalog.ProductPassConfig {
	duration, _ := vo.NewDuration(1, vo.UnitMonth)
	return catalog.ProductPassConfig{
		ProductID:   productID,
		Enabled:     true,
		Duration:    duration,
		Limit:       5,
		LimitPeriod: vo.PeriodDay,
		Categories:  vo.AllCategories(),
		Variations:  vo.AllVariations(),
	}
}

// LifetimePassConfig is a ready-made pass product config that never expires
// and has no download limit.
func LifetimePassConfig(productID uint) catalog.ProductPassConfig {
	return catalog.ProductPassConfig{
		ProductID:   productID,
		Enabled:     true,
		Duration:    vo.Forever(),
		Limit:       0,
		LimitPeriod: vo.PeriodLifetime,
		Categories:  vo.AllCategories(),
		Variations:  vo.AllVariations(),
	}
}
