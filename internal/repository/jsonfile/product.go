package jsonfile

import (
	"context"
	"fmt"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/storage"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using a JSON file table.
type ProductRepository struct {
	table *storage.Table[domain.Product]
}

// NewProductRepository creates a file-backed product repository under dir.
func NewProductRepository(dir string) *ProductRepository {
	return &ProductRepository{table: storage.NewTable[domain.Product](dir, CollectionProducts)}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.table.Create(*product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := r.table.FindByID(id)
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &product, nil
}

// List returns all products in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.table.FindAll(), nil
}

// Update applies the mutator to the stored product and persists it.
func (r *ProductRepository) Update(ctx context.Context, id string, apply func(*domain.Product)) (*domain.Product, error) {
	updated, ok, err := r.table.Update(id, apply)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &updated, nil
}
