package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// OrderStatuses lists the statuses in their nominal lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var PaymentMethods = []string{"Credit Card", "PayPal", "Cash on Delivery"}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       string          `json:"createdAt"` // RFC3339
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}
