package services

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/repos"
)

var ErrInvalidQty = errors.New("quantity must be positive")

// CartView is a detached read of a cart with its derived totals.
type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func viewOf(c domain.Cart) CartView {
	return CartView{Items: c.Snapshot(), Total: c.Total(), Count: c.Count()}
}

// CartService keeps each non-empty cart in memory and persists every change.
type CartService struct {
	KV      repos.KV
	Metrics *metrics.Metrics

	mu    sync.Mutex
	carts map[string]*domain.Cart
	subs  listeners[CartView]
}

func NewCartService(kv repos.KV, m *metrics.Metrics) *CartService {
	return &CartService{KV: kv, Metrics: m, carts: map[string]*domain.Cart{}}
}

// load must be called with s.mu held. Empty carts are not cached.
func (s *CartService) load(ctx context.Context, sid string) (*domain.Cart, error) {
	if c, ok := s.carts[sid]; ok {
		return c, nil
	}
	items, _, err := repos.Peek[[]domain.CartItem](ctx, s.KV, repos.SessionCartKey(sid))
	if err != nil {
		return nil, err
	}
	c := &domain.Cart{Items: items}
	if len(items) > 0 {
		s.carts[sid] = c
	}
	return c, nil
}

// keep must be called with s.mu held.
func (s *CartService) keep(sid string, c domain.Cart) {
	if len(c.Items) == 0 {
		delete(s.carts, sid)
		return
	}
	s.carts[sid] = &c
}

// update applies fn to a copy of the cart, persists it and only then makes it
// the current state.
func (s *CartService) update(ctx context.Context, sid, op string, fn func(*domain.Cart)) (CartView, error) {
	s.mu.Lock()
	cur, err := s.load(ctx, sid)
	if err != nil {
		s.mu.Unlock()
		return CartView{}, err
	}
	next := domain.Cart{Items: cur.Snapshot()}
	fn(&next)
	if next.Items == nil {
		next.Items = []domain.CartItem{}
	}
	if err := repos.Write(ctx, s.KV, repos.SessionCartKey(sid), next.Items); err != nil {
		s.mu.Unlock()
		return CartView{}, err
	}
	s.keep(sid, next)
	v := viewOf(next)
	s.mu.Unlock()

	s.Metrics.Cart(op)
	s.subs.notify(sid, v)
	return v, nil
}

func (s *CartService) Add(ctx context.Context, sid string, p domain.Product, qty int) (CartView, error) {
	if qty < 1 {
		return CartView{}, ErrInvalidQty
	}
	return s.update(ctx, sid, "add", func(c *domain.Cart) { c.Add(p, qty) })
}

func (s *CartService) Remove(ctx context.Context, sid, productID string) (CartView, error) {
	return s.update(ctx, sid, "remove", func(c *domain.Cart) { c.Remove(productID) })
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	_, err := s.update(ctx, sid, "clear", func(c *domain.Cart) { c.Clear() })
	return err
}

// Move hands the cart of from over to to, replacing whatever to held. An
// empty cart on from leaves to untouched.
func (s *CartService) Move(ctx context.Context, from, to string) error {
	s.mu.Lock()
	cur, err := s.load(ctx, from)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(cur.Items) == 0 {
		s.mu.Unlock()
		return nil
	}
	moved := domain.Cart{Items: cur.Snapshot()}
	if err := repos.Write(ctx, s.KV, repos.SessionCartKey(to), moved.Items); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.KV.Delete(ctx, repos.SessionCartKey(from)); err != nil {
		s.mu.Unlock()
		return err
	}
	s.keep(to, moved)
	delete(s.carts, from)
	v := viewOf(moved)
	s.mu.Unlock()

	s.Metrics.Cart("move")
	s.subs.notify(from, viewOf(domain.Cart{}))
	s.subs.notify(to, v)
	return nil
}

func (s *CartService) View(ctx context.Context, sid string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load(ctx, sid)
	if err != nil {
		return CartView{}, err
	}
	return viewOf(*c), nil
}

// Subscribe registers fn for every cart change. The returned func removes it.
func (s *CartService) Subscribe(fn func(sid string, v CartView)) func() {
	return s.subs.add(fn)
}
