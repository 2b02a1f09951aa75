package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// ReportService implements the admin sales report.
type ReportService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{orders: orders, products: products, logger: logger}
}

// SalesReport accumulates quantity sold per product across all orders and
// joins each product's current record (nil if deleted). Rows are sorted
// descending by quantity sold; ties keep first-encounter order.
func (s *ReportService) SalesReport(ctx context.Context, isAdmin bool) ([]domain.ProductSales, error) {
	if !isAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	totals := make(map[string]int)
	var encounter []string
	for _, order := range orders {
		for _, item := range order.Items {
			if _, seen := totals[item.ProductID]; !seen {
				encounter = append(encounter, item.ProductID)
			}
			totals[item.ProductID] += item.Quantity
		}
	}

	rows := make([]domain.ProductSales, 0, len(encounter))
	for _, productID := range encounter {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("join product %s: %w", productID, err)
			}
			product = nil
		}
		rows = append(rows, domain.ProductSales{
			ProductID: productID,
			Product:   product,
			Quantity:  totals[productID],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Quantity > rows[j].Quantity
	})

	s.logger.InfoContext(ctx, "sales report generated",
		slog.Int("orders", len(orders)),
		slog.Int("products", len(rows)),
	)

	return rows, nil
}
