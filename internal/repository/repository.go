package repository

import (
	"context"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByCredentials retrieves the user matching both email and password.
	GetByCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by id.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products in insertion order.
	List(ctx context.Context) ([]domain.Product, error)

	// Update applies the mutator to the stored product and persists it.
	// Returns the updated product, or a not-found error if the id is absent.
	Update(ctx context.Context, id string, apply func(*domain.Product)) (*domain.Product, error)
}

// CartRepository defines the interface for cart persistence operations.
// Each user owns at most one cart, located by user id.
type CartRepository interface {
	// GetByUserID retrieves the user's cart.
	GetByUserID(ctx context.Context, userID string) (*domain.Cart, error)

	// Create inserts a new cart.
	Create(ctx context.Context, cart *domain.Cart) error

	// Save overwrites the stored cart with the given state.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart with the given id.
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns all reviews for a product in insertion order.
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *domain.Order) error

	// List returns all orders in insertion order.
	List(ctx context.Context) ([]domain.Order, error)
}
