package http

import (
	"log/slog"
	"net/http"

	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/validator"
)

// AuthHandler handles HTTP requests for sign-up and sign-in.
type AuthHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// SignInRequest is the JSON request body for signing in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: user.WithoutPassword()})
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: user.WithoutPassword()})
}
