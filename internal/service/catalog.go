package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// CreateProductInput holds the parameters for adding a product to the catalog.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImgURL      string  `json:"imgUrl"`
}

// CatalogService implements the business logic for the product catalog.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

// ListProducts returns all products with stock remaining, in collection order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	listed := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.InStock() {
			listed = append(listed, p)
		}
	}
	return listed, nil
}

// CreateProduct adds a new product to the catalog. Admin only. New products
// start with an empty rating.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput, isAdmin bool) (*domain.Product, error) {
	if !isAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.InvalidInput("stock must not be negative")
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImgURL:      input.ImgURL,
		Rating:      domain.Rating{Average: 0, Count: 0},
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.Int("stock", product.Stock),
	)

	return product, nil
}

// AdjustStock changes a product's stock by delta. Admin only. The adjustment
// is rejected if it would take stock below zero.
func (s *CatalogService) AdjustStock(ctx context.Context, productID string, delta int, isAdmin bool) (*domain.Product, error) {
	if !isAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	negative := false
	updated, err := s.products.Update(ctx, productID, func(p *domain.Product) {
		if p.Stock+delta < 0 {
			negative = true
			return
		}
		p.Stock += delta
	})
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if negative {
		return nil, apperrors.InvalidInput("stock cannot go negative")
	}

	s.logger.InfoContext(ctx, "stock adjusted",
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("stock", updated.Stock),
	)

	return updated, nil
}
