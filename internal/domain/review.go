package domain

import "time"

// Review is an immutable product review. Creating one triggers the
// recomputation of the product's aggregated rating.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID returns the unique identifier used by the collection store.
func (r Review) RecordID() string { return r.ID }

// ReviewWithUser is a review joined with its author for listing.
type ReviewWithUser struct {
	Review
	User *User `json:"user"`
}
