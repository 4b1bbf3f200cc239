// Package rest provides the HTTP surface of the identity gate.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/pkg/web"
)

type Handler struct {
	service  *auth.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "auth_rest"),
	}
}

// RegisterRoutes registers the public authentication routes and the
// admin-gated user listing.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.service))
		r.Get("/api/v1/admin/users", h.ListUsers)
	})
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondInvalidBody(w, mLogger, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		mLogger.ErrorContext(r.Context(), "Login failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Login failed")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, user)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto auth.RegisterDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		web.RespondInvalidBody(w, mLogger, err)
		return
	}

	user, err := h.service.Register(r.Context(), dto)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			web.RespondError(w, mLogger, http.StatusConflict, "Email is already registered")
			return
		}
		mLogger.ErrorContext(r.Context(), "Registration failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Registration failed")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	actor := auth.ActorFrom(r.Context())
	if !actor.IsAdmin() {
		web.RespondError(w, mLogger, http.StatusForbidden, "Admin role required")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, h.service.Users())
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}
