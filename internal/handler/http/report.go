package http

import (
	"log/slog"
	"net/http"

	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
)

// ReportHandler handles HTTP requests for the admin sales report.
type ReportHandler struct {
	service *service.ReportService
	admin   adminChecker
	logger  *slog.Logger
}

// NewReportHandler creates a new report HTTP handler.
func NewReportHandler(svc *service.ReportService, users repository.UserRepository, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		admin:   adminChecker{users: users},
		logger:  logger,
	}
}

// SalesReport handles GET /admin/orders
func (h *ReportHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.admin.isAdmin(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rows, err := h.service.SalesReport(r.Context(), isAdmin)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: rows})
}
