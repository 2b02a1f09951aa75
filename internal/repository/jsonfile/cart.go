package jsonfile

import (
	"context"
	"fmt"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/storage"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// CartRepository implements repository.CartRepository using a JSON file table.
type CartRepository struct {
	table *storage.Table[domain.Cart]
}

// NewCartRepository creates a file-backed cart repository under dir.
func NewCartRepository(dir string) *CartRepository {
	return &CartRepository{table: storage.NewTable[domain.Cart](dir, CollectionCart)}
}

// GetByUserID retrieves the user's cart. Each user owns at most one.
func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	matches := r.table.FindBy(func(c domain.Cart) bool { return c.UserID == userID })
	if len(matches) == 0 {
		return nil, apperrors.NotFound("cart", userID)
	}
	return &matches[0], nil
}

// Create inserts a new cart.
func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if err := r.table.Create(*cart); err != nil {
		return fmt.Errorf("create cart: %w", err)
	}
	return nil
}

// Save overwrites the stored cart with the given state.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	_, ok, err := r.table.Update(cart.ID, func(stored *domain.Cart) { *stored = *cart })
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return apperrors.NotFound("cart", cart.ID)
	}
	return nil
}

// Delete removes the cart with the given id.
func (r *CartRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.table.Delete(id)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if !removed {
		return apperrors.NotFound("cart", id)
	}
	return nil
}
