package repos

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

type ProductRepo struct {
	kv      KV
	latency time.Duration // simulated round trip on List
	mu      sync.Mutex
}

func NewProductRepo(kv KV, latency time.Duration) *ProductRepo {
	return &ProductRepo{kv: kv, latency: latency}
}

func (r *ProductRepo) all(ctx context.Context) ([]domain.Product, error) {
	return Read(ctx, r.kv, ProductsKey, seedProducts())
}

// List returns the whole catalog after the configured latency.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if r.latency > 0 {
		t := time.NewTimer(r.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return r.all(ctx)
}

// Get returns nil when no product has the id.
func (r *ProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Save replaces the product with the same id or appends it.
func (r *ProductRepo) Save(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.all(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, p)
	}
	return Write(ctx, r.kv, ProductsKey, products)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.all(ctx)
	if err != nil {
		return err
	}
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return Write(ctx, r.kv, ProductsKey, out)
}
