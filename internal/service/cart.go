package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// CartService couples cart mutation with product stock mutation. It is the
// only component allowed to do so: a cart line item exists only if stock was
// decremented by the same amount when it was added, and removing it restores
// that stock.
//
// The cart write and the product write are two separate collection rewrites.
// A failure between them leaves the two collections inconsistent; that case
// is logged loudly and never rolled back.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// AddToCart adds quantity units of a product to the user's cart, creating
// the cart if the user has none. An item already in the cart keeps its
// original price snapshot and only its quantity grows; a new item snapshots
// the current product price. Product stock is decremented by the same
// amount.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	if product.Stock < quantity {
		return nil, apperrors.OutOfStock(productID)
	}

	if idx := cart.FindItemIndex(productID); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	cart.Recalculate()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	// Stock never goes negative, even if another request drained it between
	// the check above and this write.
	short := false
	if _, err := s.products.Update(ctx, productID, func(p *domain.Product) {
		if p.Stock < quantity {
			short = true
			return
		}
		p.Stock -= quantity
	}); err != nil {
		s.logger.ErrorContext(ctx, "cart saved but stock decrement failed; collections are inconsistent",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	if short {
		s.logger.ErrorContext(ctx, "cart saved but stock was drained concurrently; collections are inconsistent",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
		)
		return nil, apperrors.OutOfStock(productID)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return s.joinProducts(ctx, cart), nil
}

// GetCart returns the user's cart with each item's product joined in. A
// product deleted after the item was added joins as an empty placeholder.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return s.joinProducts(ctx, cart), nil
}

// RemoveFromCart removes the product's line item from the cart and restores
// the removed quantity to product stock. A product deleted since the add
// does not block the removal; its stock is simply gone.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	idx := cart.FindItemIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}
	removed := cart.Items[idx]
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.Recalculate()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if _, err := s.products.Update(ctx, productID, func(p *domain.Product) {
		p.Stock += removed.Quantity
	}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.InfoContext(ctx, "product deleted since add; stock not restored",
				slog.String("product_id", productID),
			)
		} else {
			s.logger.ErrorContext(ctx, "cart saved but stock restore failed; collections are inconsistent",
				slog.String("user_id", userID),
				slog.String("product_id", productID),
				slog.Int("quantity", removed.Quantity),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("restore stock: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", removed.Quantity),
	)

	return s.joinProducts(ctx, cart), nil
}

// Checkout snapshots the cart into an order and deletes the cart. Stock is
// not touched: it was already decremented as items were added.
func (s *CartService) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       make([]domain.OrderItem, 0, len(cart.Items)),
		TotalAmount: cart.TotalAmount,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		s.logger.ErrorContext(ctx, "order created but cart delete failed; collections are inconsistent",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("delete cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart checked out",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
		slog.Int("item_count", len(order.Items)),
	)

	return order, nil
}

// getOrCreateCart returns the user's cart, creating and persisting an empty
// one if none exists yet.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart = &domain.Cart{
		ID:     uuid.New().String(),
		UserID: userID,
		Items:  []domain.CartItem{},
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// joinProducts resolves each item's product for display. A missing product
// joins as an empty placeholder rather than failing the whole request.
func (s *CartService) joinProducts(ctx context.Context, cart *domain.Cart) *domain.CartView {
	view := &domain.CartView{
		ID:             cart.ID,
		UserID:         cart.UserID,
		Items:          make([]domain.CartItemView, 0, len(cart.Items)),
		TotalItemCount: cart.TotalItemCount,
		TotalAmount:    cart.TotalAmount,
	}
	for _, item := range cart.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			product = &domain.Product{}
		}
		view.Items = append(view.Items, domain.CartItemView{CartItem: item, Product: product})
	}
	return view
}
