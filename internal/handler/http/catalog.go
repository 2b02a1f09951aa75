package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
	apperrors "github.com/CassioFig/retail-dashboard-app-server/pkg/errors"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/validator"
)

// adminChecker resolves whether the request's user is an administrator.
type adminChecker struct {
	users repository.UserRepository
}

func (a adminChecker) isAdmin(ctx context.Context) (bool, error) {
	uid, ok := userIDFromContext(ctx)
	if !ok {
		return false, apperrors.Unauthorized("authentication required")
	}
	user, err := a.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.Unauthorized("unknown user")
		}
		return false, err
	}
	return user.IsAdmin, nil
}

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service *service.CatalogService
	admin   adminChecker
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, users repository.UserRepository, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		admin:   adminChecker{users: users},
		logger:  logger,
	}
}

// AdjustStockRequest is the JSON request body for changing a product's stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: products})
}

// CreateProduct handles POST /admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.admin.isAdmin(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req service.CreateProductInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req, isAdmin)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: product})
}

// AdjustStock handles PATCH /admin/products/{productId}/stock
func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.admin.isAdmin(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	var req AdjustStockRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product, err := h.service.AdjustStock(r.Context(), productID, req.Delta, isAdmin)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}
