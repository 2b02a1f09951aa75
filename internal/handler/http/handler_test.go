package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CassioFig/retail-dashboard-app-server/internal/domain"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository/jsonfile"
	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/health"
)

// ============================================================================
// Test fixture: full router over jsonfile repositories in a temp dir
// ============================================================================

type fixture struct {
	router   http.Handler
	users    *jsonfile.UserRepository
	products *jsonfile.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := jsonfile.NewUserRepository(dir)
	products := jsonfile.NewProductRepository(dir)
	carts := jsonfile.NewCartRepository(dir)
	orders := jsonfile.NewOrderRepository(dir)
	reviews := jsonfile.NewReviewRepository(dir)

	svcs := Services{
		Users:   service.NewUserService(users, logger),
		Catalog: service.NewCatalogService(products, logger),
		Cart:    service.NewCartService(carts, products, orders, logger),
		Reviews: service.NewReviewService(reviews, products, users, logger),
		Reports: service.NewReportService(orders, products, logger),
	}

	return &fixture{
		router:   NewRouter(svcs, users, health.NewHandler(), logger),
		users:    users,
		products: products,
	}
}

func (f *fixture) seedUser(t *testing.T, id string, isAdmin bool) {
	t.Helper()
	err := f.users.Create(context.Background(), &domain.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     id + "@example.com",
		Password:  "123",
		IsAdmin:   isAdmin,
	})
	require.NoError(t, err)
}

func (f *fixture) seedProduct(t *testing.T, id string, price float64, stock int) {
	t.Helper()
	err := f.products.Create(context.Background(), &domain.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
}

func (f *fixture) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// decodeResponse reads the body into the standard envelope.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// data decodes the envelope's data field into dst.
func data(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}

// ============================================================================
// Auth
// ============================================================================

func TestSignUpAndSignIn_RoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.User
	data(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password, "password must not be echoed")

	rec = f.do(http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    "ada@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var signedIn domain.User
	data(t, rec, &signedIn)
	assert.Equal(t, created.ID, signedIn.ID)
}

func TestSignUp_DuplicateEmailConflict(t *testing.T) {
	f := newFixture(t)
	body := map[string]any{
		"firstName": "Ada", "lastName": "L", "email": "dup@example.com", "password": "x",
	}

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/auth/signup", "", body).Code)

	rec := f.do(http.MethodPost, "/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeResponse(t, rec).Error.Code)
}

func TestSignUp_ValidationFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/auth/signup", "", map[string]any{"email": "not-an-email"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "Email")
	assert.Contains(t, resp.Error.Fields, "Password")
}

func TestSignIn_WrongPasswordUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)

	rec := f.do(http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    "u1@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================================================
// Catalog
// ============================================================================

func TestListProducts_HidesZeroStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", 10, 5)
	f.seedProduct(t, "p2", 20, 0)

	rec := f.do(http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	data(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "admin", true)
	f.seedUser(t, "shopper", false)
	body := map[string]any{"name": "New Kicks", "price": 49.99, "stock": 3}

	rec := f.do(http.MethodPost, "/admin/products", "shopper", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/admin/products", "admin", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	data(t, rec, &created)
	assert.Equal(t, "New Kicks", created.Name)
	assert.NotEmpty(t, created.ID)
}

func TestCreateProduct_NoUserHeaderUnauthorized(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/admin/products", "", map[string]any{"name": "x", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdjustStock_Patch(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "admin", true)
	f.seedProduct(t, "p1", 10, 5)

	rec := f.do(http.MethodPatch, "/admin/products/p1/stock", "admin", map[string]any{"delta": 7})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Product
	data(t, rec, &updated)
	assert.Equal(t, 12, updated.Stock)

	rec = f.do(http.MethodPatch, "/admin/products/p1/stock", "admin", map[string]any{"delta": -100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Cart
// ============================================================================

func TestCartFlow_AddGetRemove(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 20.00, 10)

	rec := f.do(http.MethodPost, "/carts", "u1", map[string]any{"productId": "p1", "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart domain.CartView
	data(t, rec, &cart)
	assert.Equal(t, 3, cart.TotalItemCount)
	assert.InDelta(t, 60.00, cart.TotalAmount, 1e-9)
	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "p1", cart.Items[0].Product.ID)

	rec = f.do(http.MethodGet, "/carts", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data(t, rec, &cart)
	assert.Equal(t, 3, cart.TotalItemCount)

	rec = f.do(http.MethodDelete, "/carts/product/p1", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data(t, rec, &cart)
	assert.Equal(t, 0, cart.TotalItemCount)
	assert.Empty(t, cart.Items)
}

func TestAddToCart_InsufficientStockConflict(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 20.00, 2)

	rec := f.do(http.MethodPost, "/carts", "u1", map[string]any{"productId": "p1", "quantity": 5})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "OUT_OF_STOCK", decodeResponse(t, rec).Error.Code)
}

func TestAddToCart_UnknownProductNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)

	rec := f.do(http.MethodPost, "/carts", "u1", map[string]any{"productId": "nope", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCart_NoCartNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)

	rec := f.do(http.MethodGet, "/carts", "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_RequiresUserHeader(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/carts"},
		{http.MethodGet, "/carts"},
		{http.MethodDelete, "/carts/product/p1"},
		{http.MethodPost, "/carts/checkout"},
	} {
		rec := f.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCheckout_CreatesOrderAndEmptiesCart(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 59.99, 4)

	require.Equal(t, http.StatusOK,
		f.do(http.MethodPost, "/carts", "u1", map[string]any{"productId": "p1", "quantity": 2}).Code)

	rec := f.do(http.MethodPost, "/carts/checkout", "u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	data(t, rec, &order)
	assert.NotEmpty(t, order.ID)
	assert.InDelta(t, 119.98, order.TotalAmount, 1e-9)

	rec = f.do(http.MethodGet, "/carts", "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Reviews
// ============================================================================

func TestAddReview_RecomputesRating(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 10, 5)

	rec := f.do(http.MethodPost, "/reviews", "u1", map[string]any{
		"productId": "p1", "rating": 4, "comment": "solid",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	p, err := f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.Rating.Average, 1e-9)
	assert.Equal(t, 1, p.Rating.Count)
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 10, 5)

	rec := f.do(http.MethodPost, "/reviews", "u1", map[string]any{
		"productId": "p1", "rating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReviews_PublicEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 10, 5)

	require.Equal(t, http.StatusCreated,
		f.do(http.MethodPost, "/reviews", "u1", map[string]any{"productId": "p1", "rating": 5}).Code)

	rec := f.do(http.MethodGet, "/reviews/product/p1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []domain.ReviewWithUser
	data(t, rec, &reviews)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "u1", reviews[0].User.ID)
}

// ============================================================================
// Sales report
// ============================================================================

func TestSalesReport_AdminOnly(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "admin", true)
	f.seedUser(t, "u1", false)
	f.seedProduct(t, "p1", 25.00, 10)

	// Two checkouts for the same product.
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK,
			f.do(http.MethodPost, "/carts", "u1", map[string]any{"productId": "p1", "quantity": 2}).Code)
		require.Equal(t, http.StatusCreated,
			f.do(http.MethodPost, "/carts/checkout", "u1", nil).Code)
	}

	rec := f.do(http.MethodGet, "/admin/orders", "u1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodGet, "/admin/orders", "admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.ProductSales
	data(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].ProductID)
	assert.Equal(t, 4, rows[0].Quantity)
}

// ============================================================================
// Plumbing
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/ready", "", nil).Code)
}

func TestContentTypeJSON_RejectsOtherTypes(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMalformedJSONBadRequest(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownUserHeaderUnauthorized(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin/orders", fmt.Sprintf("ghost-%d", 42), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
