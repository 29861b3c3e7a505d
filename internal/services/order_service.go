package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/repos"
)

var (
	ErrCartEmpty      = errors.New("cart empty")
	ErrMissingAddress = errors.New("missing shipping address")
	ErrBadPayment     = errors.New("unsupported payment method")
	ErrBadStatus      = errors.New("unknown order status")
)

type OrderService struct {
	Carts    *CartService
	Sessions *SessionService
	Orders   *repos.OrderRepo
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

func NewOrderService(carts *CartService, sessions *SessionService, orders *repos.OrderRepo, m *metrics.Metrics) *OrderService {
	return &OrderService{Carts: carts, Sessions: sessions, Orders: orders, Metrics: m, Now: time.Now}
}

func validPayment(method string) bool {
	for _, m := range domain.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Place turns the session's cart into a Pending order owned by the logged-in
// user, then empties the cart.
func (s *OrderService) Place(ctx context.Context, sid, address, payment string) (domain.Order, error) {
	u, err := s.Sessions.Current(ctx, sid)
	if err != nil {
		return domain.Order{}, err
	}
	if u == nil {
		return domain.Order{}, ErrNotLoggedIn
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Order{}, ErrMissingAddress
	}
	if payment == "" {
		payment = domain.PaymentMethods[0]
	}
	if !validPayment(payment) {
		return domain.Order{}, ErrBadPayment
	}

	cart, err := s.Carts.View(ctx, sid)
	if err != nil {
		return domain.Order{}, err
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	now := s.Now().UTC()
	o := domain.Order{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		UserID:          u.ID,
		Items:           cart.Items,
		Total:           cart.Total,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now.Format(time.RFC3339),
		ShippingAddress: address,
		PaymentMethod:   payment,
	}
	o, err = s.Orders.Create(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	s.Metrics.OrderPlaced()
	if err := s.Carts.Clear(ctx, sid); err != nil {
		return o, err
	}
	return o, nil
}

func (s *OrderService) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.Orders.List(ctx, userID)
}

func (s *OrderService) All(ctx context.Context) ([]domain.Order, error) {
	return s.Orders.List(ctx, "")
}

// UpdateStatus accepts any known status in any order; transitions are not
// checked.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	return s.Orders.UpdateStatus(ctx, id, status)
}
