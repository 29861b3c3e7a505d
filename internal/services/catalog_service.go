package services

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const AllCategories = "All"

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.List(ctx)
}

// Search keeps products whose name contains q (case-insensitive) and whose
// category equals category. An empty category or "All" matches any.
func (s *CatalogService) Search(ctx context.Context, q, category string) ([]domain.Product, error) {
	all, err := s.Prods.List(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.Product{}
	for _, p := range all {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Categories lists distinct categories in catalog order, after "All".
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.Prods.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{AllCategories}
	for _, p := range all {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

// Featured returns the flagship product, or the first one if it was removed.
func (s *CatalogService) Featured(ctx context.Context) (*domain.Product, error) {
	all, err := s.Prods.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == repos.FeaturedProductID {
			return &all[i], nil
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func (s *CatalogService) Save(ctx context.Context, p domain.Product) error {
	return s.Prods.Save(ctx, p)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.Prods.Delete(ctx, id)
}
