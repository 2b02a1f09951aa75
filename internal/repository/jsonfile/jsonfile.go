// Package jsonfile implements the repository interfaces on top of the
// file-backed collection store, one JSON document per collection.
package jsonfile

// Collection names match the documents the original dashboard seeded, so an
// existing data directory keeps working. Note "cart" is singular.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionCart     = "cart"
	CollectionReviews  = "reviews"
)
