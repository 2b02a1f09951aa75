// Package seed populates an empty data directory with the dashboard's
// starter catalog and the default administrator account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
)

// adminEmail is the email of the seeded administrator. Matches the account
// the dashboard client signs in with out of the box.
const adminEmail = "admin@example.com"

// starterProducts is the catalog the dashboard ships with.
var starterProducts = []domain.Product{
	{ID: "c8b7a2e0-0001-4b1a-9f00-000000000001", Name: "Nike Air Force 1", Description: "Classic low-top sneaker in triple white leather.", Price: 109.99, Stock: 25, ImgURL: "https://static.nike.com/air-force-1.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0002-4b1a-9f00-000000000002", Name: "Adidas Ultraboost 22", Description: "Responsive running shoe with Primeknit upper.", Price: 189.99, Stock: 18, ImgURL: "https://assets.adidas.com/ultraboost-22.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0003-4b1a-9f00-000000000003", Name: "Converse Chuck Taylor All Star", Description: "High-top canvas sneaker, the original since 1917.", Price: 65.00, Stock: 40, ImgURL: "https://www.converse.com/chuck-taylor.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0004-4b1a-9f00-000000000004", Name: "New Balance 574", Description: "Suede and mesh lifestyle sneaker in grey.", Price: 89.99, Stock: 22, ImgURL: "https://nb.scene7.com/574-grey.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0005-4b1a-9f00-000000000005", Name: "Vans Old Skool", Description: "Skate classic with the signature side stripe.", Price: 70.00, Stock: 30, ImgURL: "https://images.vans.com/old-skool.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0006-4b1a-9f00-000000000006", Name: "Puma Suede Classic", Description: "Iconic suede sneaker in royal blue.", Price: 75.00, Stock: 15, ImgURL: "https://images.puma.com/suede-classic.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0007-4b1a-9f00-000000000007", Name: "Asics Gel-Kayano 29", Description: "Stability running shoe with FF Blast Plus cushioning.", Price: 160.00, Stock: 12, ImgURL: "https://images.asics.com/gel-kayano-29.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0008-4b1a-9f00-000000000008", Name: "Reebok Club C 85", Description: "Vintage court sneaker in soft leather.", Price: 80.00, Stock: 20, ImgURL: "https://images.reebok.com/club-c-85.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0009-4b1a-9f00-000000000009", Name: "Dr. Martens 1460", Description: "Eight-eye leather boot with air-cushioned sole.", Price: 170.00, Stock: 10, ImgURL: "https://i1.adis.ws/drmartens-1460.png", Rating: domain.Rating{}},
	{ID: "c8b7a2e0-0010-4b1a-9f00-000000000010", Name: "Salomon XT-6", Description: "Technical trail shoe turned street staple.", Price: 200.00, Stock: 8, ImgURL: "https://www.salomon.com/xt-6.png", Rating: domain.Rating{}},
}

// Run seeds the starter catalog and admin user. It is idempotent: a
// non-empty products collection means a previous run (or live data) is
// already in place, and nothing is written.
func Run(ctx context.Context, products repository.ProductRepository, users repository.UserRepository, logger *slog.Logger) error {
	existing, err := products.List(ctx)
	if err != nil {
		return fmt.Errorf("check products collection: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "seed skipped, products collection not empty",
			slog.Int("products", len(existing)),
		)
		return nil
	}

	for i := range starterProducts {
		p := starterProducts[i]
		if err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}

	if _, err := users.GetByEmail(ctx, adminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("check admin user: %w", err)
		}
		admin := &domain.User{
			ID:        "a0000000-0000-4000-8000-000000000001",
			FirstName: "Admin",
			LastName:  "User",
			Email:     adminEmail,
			Password:  "123",
			IsAdmin:   true,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	}

	logger.InfoContext(ctx, "seed complete",
		slog.Int("products", len(starterProducts)),
		slog.String("admin_email", adminEmail),
	)
	return nil
}
