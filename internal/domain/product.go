package domain

// Rating is the aggregated review score for a product.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product represents a catalog item. Stock and price are never negative;
// the rating is recomputed whenever a review is added.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImgURL      string  `json:"imgUrl"`
	Rating      Rating  `json:"rating"`
}

// RecordID returns the unique identifier used by the collection store.
func (p Product) RecordID() string { return p.ID }

// InStock reports whether the product has any units left.
func (p Product) InStock() bool { return p.Stock > 0 }
