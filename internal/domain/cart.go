package domain

import "github.com/shopspring/decimal"

// CartItem is a product snapshot plus the quantity in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart holds at most one line per product id, in insertion order.
// Totals are always derived from the lines.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges qty into the existing line for p.ID or appends a new line.
func (c *Cart) Add(p Product, qty int) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: qty})
}

// Remove drops the whole line for productID.
func (c *Cart) Remove(productID string) {
	out := c.Items[:0]
	for _, it := range c.Items {
		if it.ID != productID {
			out = append(out, it)
		}
	}
	c.Items = out
}

func (c *Cart) Clear() { c.Items = nil }

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Snapshot returns a copy of the lines that later cart mutations cannot touch.
func (c Cart) Snapshot() []CartItem {
	out := make([]CartItem, len(c.Items))
	for i, it := range c.Items {
		it.Images = append([]string(nil), it.Images...)
		it.Specs = append([]string(nil), it.Specs...)
		out[i] = it
	}
	return out
}
