package jsonfile

import (
	"context"
	"fmt"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/storage"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// UserRepository implements repository.UserRepository using a JSON file table.
type UserRepository struct {
	table *storage.Table[domain.User]
}

// NewUserRepository creates a file-backed user repository under dir.
func NewUserRepository(dir string) *UserRepository {
	return &UserRepository{table: storage.NewTable[domain.User](dir, CollectionUsers)}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.table.Create(*user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.table.FindByID(id)
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	matches := r.table.FindBy(func(u domain.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, apperrors.NotFound("user", email)
	}
	return &matches[0], nil
}

// GetByCredentials retrieves the user matching both email and password.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	matches := r.table.FindBy(func(u domain.User) bool {
		return u.Email == email && u.Password == password
	})
	if len(matches) == 0 {
		return nil, apperrors.NotFound("user", email)
	}
	return &matches[0], nil
}
