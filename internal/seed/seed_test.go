package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository/jsonfile"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_PopulatesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	products := jsonfile.NewProductRepository(dir)
	users := jsonfile.NewUserRepository(dir)
	ctx := context.Background()

	require.NoError(t, Run(ctx, products, users, testLogger()))

	all, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(starterProducts))

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	products := jsonfile.NewProductRepository(dir)
	users := jsonfile.NewUserRepository(dir)
	ctx := context.Background()

	require.NoError(t, Run(ctx, products, users, testLogger()))
	require.NoError(t, Run(ctx, products, users, testLogger()))

	all, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(starterProducts))
}

func TestRun_SkipsNonEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	products := jsonfile.NewProductRepository(dir)
	users := jsonfile.NewUserRepository(dir)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &domain.Product{ID: "live-1", Name: "Existing", Stock: 1}))

	require.NoError(t, Run(ctx, products, users, testLogger()))

	all, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "live data must not be touched")
}
