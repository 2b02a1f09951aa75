package domain

import "math"

// Cart represents a user's shopping cart. Each user has at most one cart,
// located by user ID. Totals are derived from the item sequence and must be
// recomputed after every mutation.
type Cart struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Items          []CartItem `json:"items"`
	TotalItemCount int        `json:"totalItemCount"`
	TotalAmount    float64    `json:"totalAmount"`
}

// CartItem is a single line in a cart. Price is a snapshot of the product
// price captured when the item was first added; later product price changes
// do not affect it.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// RecordID returns the unique identifier used by the collection store.
func (c Cart) RecordID() string { return c.ID }

// FindItemIndex returns the index of the cart item for the given product,
// or -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Recalculate recomputes TotalItemCount and TotalAmount from the full item
// sequence. TotalAmount is rounded to two decimal places.
func (c *Cart) Recalculate() {
	count := 0
	amount := 0.0
	for _, item := range c.Items {
		count += item.Quantity
		amount += item.Price * float64(item.Quantity)
	}
	c.TotalItemCount = count
	c.TotalAmount = RoundAmount(amount)
}

// RoundAmount rounds a monetary amount to two decimal places.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CartView is a cart with each item's product joined in for display.
type CartView struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Items          []CartItemView `json:"items"`
	TotalItemCount int            `json:"totalItemCount"`
	TotalAmount    float64        `json:"totalAmount"`
}

// CartItemView is a cart item joined with its product. A product deleted
// after the item was added joins as an empty placeholder, never nil.
type CartItemView struct {
	CartItem
	Product *Product `json:"product"`
}
