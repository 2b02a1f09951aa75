package jsonfile

import (
	"context"
	"fmt"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/storage"
)

// OrderRepository implements repository.OrderRepository using a JSON file table.
type OrderRepository struct {
	table *storage.Table[domain.Order]
}

// NewOrderRepository creates a file-backed order repository under dir.
func NewOrderRepository(dir string) *OrderRepository {
	return &OrderRepository{table: storage.NewTable[domain.Order](dir, CollectionOrders)}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.table.Create(*order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// List returns all orders in insertion order.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.table.FindAll(), nil
}
