package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// ReviewService implements the business logic for product reviews and the
// aggregation of review scores onto products.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		users:    users,
		logger:   logger,
	}
}

// AddReview creates an immutable review and recomputes the product's rating
// as the arithmetic mean of all its reviews, including the new one.
func (s *ReviewService) AddReview(ctx context.Context, userID, productID string, rating int, comment string) (*domain.Review, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	all, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for aggregation: %w", err)
	}

	sum := 0
	for _, r := range all {
		sum += r.Rating
	}
	average := float64(sum) / float64(len(all))

	if _, err := s.products.Update(ctx, productID, func(p *domain.Product) {
		p.Rating = domain.Rating{Average: average, Count: len(all)}
	}); err != nil {
		s.logger.ErrorContext(ctx, "review saved but rating aggregation failed; product rating is stale",
			slog.String("product_id", productID),
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("update product rating: %w", err)
	}

	s.logger.InfoContext(ctx, "review added",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
		slog.Int("rating", rating),
	)

	return review, nil
}

// ListReviews returns all reviews for a product joined with their authoring
// user. The full user record is joined in, matching what the storefront
// consumes today. A deleted author joins as nil.
func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]domain.ReviewWithUser, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	out := make([]domain.ReviewWithUser, 0, len(reviews))
	for _, review := range reviews {
		user, err := s.users.GetByID(ctx, review.UserID)
		if err != nil {
			user = nil
		}
		out = append(out, domain.ReviewWithUser{Review: review, User: user})
	}
	return out, nil
}
