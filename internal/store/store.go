package store

import (
	"context"
	"sync"

	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
)

// Identity is the client-side mirror of the server session. It is
// display-only and may be stale; privileged calls re-validate via 401.
type Identity struct {
	Username string
	Role     models.Role
}

// Draft is the single-slot, in-progress purchase: the chosen product
// and quantity before the server has confirmed anything. It is
// discarded on navigation away from the order flow and on logout.
type Draft struct {
	Product  models.Product
	Quantity int
}

// Total returns the derived amount for the draft.
func (d Draft) Total() float64 {
	return float64(d.Quantity) * d.Product.Price
}

// Store holds the process-wide view-model cache: in-memory mirrors of
// the catalog and orders, refreshed through the API gateway and always
// replaced wholesale, never patched. Overlapping refreshes are allowed;
// the last write wins since both carry the same authoritative snapshot.
type Store struct {
	mu     sync.RWMutex
	client *api.Client

	products []models.Product
	orders   []models.Order
	identity *Identity
	draft    *Draft
}

// New creates a store backed by the given API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// RefreshProducts replaces the catalog mirror with the server snapshot.
func (s *Store) RefreshProducts(ctx context.Context) error {
	products, err := s.client.Products(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// RefreshOrders replaces the orders mirror with the server snapshot.
func (s *Store) RefreshOrders(ctx context.Context) error {
	orders, err := s.client.Orders(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// RefreshAll refreshes products and orders in sequence.
func (s *Store) RefreshAll(ctx context.Context) error {
	if err := s.RefreshProducts(ctx); err != nil {
		return err
	}
	return s.RefreshOrders(ctx)
}

// Products returns a snapshot copy of the catalog mirror.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Orders returns a snapshot copy of the orders mirror.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ProductByID looks a product up in the current mirror.
func (s *Store) ProductByID(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// SetIdentity records the logged-in user.
func (s *Store) SetIdentity(id Identity) {
	s.mu.Lock()
	s.identity = &id
	s.mu.Unlock()
}

// Identity returns the current identity mirror, if any.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// SetDraft replaces the draft slot.
func (s *Store) SetDraft(d Draft) {
	s.mu.Lock()
	s.draft = &d
	s.mu.Unlock()
}

// Draft returns the current draft, if any.
func (s *Store) Draft() (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// ClearDraft discards the in-progress purchase.
func (s *Store) ClearDraft() {
	s.mu.Lock()
	s.draft = nil
	s.mu.Unlock()
}

// ClearSession wipes everything tied to the logged-in user: identity,
// draft, and both cache mirrors.
func (s *Store) ClearSession() {
	s.mu.Lock()
	s.identity = nil
	s.draft = nil
	s.products = nil
	s.orders = nil
	s.mu.Unlock()
}
