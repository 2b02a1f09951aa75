package jsonfile

import (
	"context"
	"fmt"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/storage"
)

// ReviewRepository implements repository.ReviewRepository using a JSON file table.
type ReviewRepository struct {
	table *storage.Table[domain.Review]
}

// NewReviewRepository creates a file-backed review repository under dir.
func NewReviewRepository(dir string) *ReviewRepository {
	return &ReviewRepository{table: storage.NewTable[domain.Review](dir, CollectionReviews)}
}

// Create inserts a new review. Reviews are immutable once created.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.table.Create(*review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListByProduct returns all reviews for a product in insertion order.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return r.table.FindBy(func(rv domain.Review) bool { return rv.ProductID == productID }), nil
}
