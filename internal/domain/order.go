package domain

// Order is a snapshot of a cart taken at checkout.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

// OrderItem is a single line in an order, with the price snapshot carried
// over from the cart.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// RecordID returns the unique identifier used by the collection store.
func (o Order) RecordID() string { return o.ID }

// ProductSales is one row of the admin sales report: total quantity sold for
// a product across all orders. Product is nil when the product has been
// deleted since the orders were placed.
type ProductSales struct {
	ProductID string   `json:"productId"`
	Product   *Product `json:"product"`
	Quantity  int      `json:"quantity"`
}
