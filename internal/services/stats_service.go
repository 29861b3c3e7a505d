package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/repos"
)

type MonthlySales struct {
	Month string          `json:"month"` // 2006-01
	Sales decimal.Decimal `json:"sales"`
}

type Stats struct {
	Sales    decimal.Decimal `json:"sales"`
	Orders   int             `json:"orders"`
	Products int             `json:"products"`
	ByMonth  []MonthlySales  `json:"byMonth"`
}

type StatsService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewStatsService(orders *repos.OrderRepo, prods *repos.ProductRepo) *StatsService {
	return &StatsService{Orders: orders, Prods: prods}
}

func (s *StatsService) Dashboard(ctx context.Context) (Stats, error) {
	orders, err := s.Orders.List(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	products, err := s.Prods.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Sales: decimal.Zero, Orders: len(orders), Products: len(products), ByMonth: []MonthlySales{}}
	months := map[string]decimal.Decimal{}
	for _, o := range orders {
		st.Sales = st.Sales.Add(o.Total)
		month := "unknown"
		if t, err := time.Parse(time.RFC3339, o.CreatedAt); err == nil {
			month = t.UTC().Format("2006-01")
		}
		months[month] = months[month].Add(o.Total)
	}
	for m, v := range months {
		st.ByMonth = append(st.ByMonth, MonthlySales{Month: m, Sales: v})
	}
	sort.Slice(st.ByMonth, func(i, j int) bool { return st.ByMonth[i].Month < st.ByMonth[j].Month })
	return st, nil
}
