package repos

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"storefront/internal/domain"
)

var ErrOrderExists = errors.New("order exists")

type OrderRepo struct {
	kv KV
	mu sync.Mutex
}

func NewOrderRepo(kv KV) *OrderRepo { return &OrderRepo{kv: kv} }

func (r *OrderRepo) all(ctx context.Context) ([]domain.Order, error) {
	return Read(ctx, r.kv, OrdersKey, []domain.Order{})
}

// Create appends o and returns it as stored. A numeric (time-derived) id that
// is already taken is bumped to the next free one; any other taken id is
// rejected with ErrOrderExists.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.all(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	ids := make(map[string]bool, len(orders))
	for _, existing := range orders {
		ids[existing.ID] = true
	}
	if ids[o.ID] {
		n, err := strconv.ParseInt(o.ID, 10, 64)
		if err != nil {
			return domain.Order{}, ErrOrderExists
		}
		for ids[strconv.FormatInt(n, 10)] {
			n++
		}
		o.ID = strconv.FormatInt(n, 10)
	}
	if err := Write(ctx, r.kv, OrdersKey, append(orders, o)); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// List returns every order, or only the ones owned by userID when it is set.
func (r *OrderRepo) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return orders, nil
	}
	out := []domain.Order{}
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, nil
}

// UpdateStatus overwrites the status of one order. Unknown ids are ignored
// and nothing is written.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.all(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			return Write(ctx, r.kv, OrdersKey, orders)
		}
	}
	return nil
}
