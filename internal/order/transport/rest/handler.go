// Package rest provides the HTTP surface of the order engine: checkout, the
// buyer's order views, and the admin back-office operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/internal/cart"
	"github.com/kaozx001/project-nawatakum/internal/checkout"
	"github.com/kaozx001/project-nawatakum/internal/order"
	ordererrors "github.com/kaozx001/project-nawatakum/internal/order/errors"
	"github.com/kaozx001/project-nawatakum/pkg/web"
)

type Handler struct {
	orders   order.OrderService
	checkout *checkout.Service
	carts    *cart.Registry
	authSvc  *auth.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(orders order.OrderService, checkoutSvc *checkout.Service, carts *cart.Registry, authSvc *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		orders:   orders,
		checkout: checkoutSvc,
		carts:    carts,
		authSvc:  authSvc,
		validate: validator.New(),
		logger:   logger.With("component", "order_rest"),
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.authSvc))

		r.Post("/api/v1/checkout", h.Checkout)

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", h.MyOrders)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.ByID)
				r.Post("/cancel", h.Cancel)
			})
		})

		r.Route("/api/v1/admin/orders", func(r chi.Router) {
			r.Get("/", h.All)
			r.Get("/stats", h.Stats)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Put("/{id}/paid", h.MarkPaid)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondInvalidBody(w, mLogger, err)
		return
	}

	userCart, err := h.carts.ForUser(actor.ID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to load cart", "user_id", actor.ID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	created, err := h.checkout.PlaceOrder(r.Context(), actor, userCart, req)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Cart is empty")
			return
		}
		mLogger.ErrorContext(r.Context(), "Checkout failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Checkout failed")
		return
	}
	mLogger.InfoContext(r.Context(), "Order placed", slog.String("ID", created.ID))
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())
	web.RespondJSON(w, mLogger, http.StatusOK, h.orders.UserOrders(r.Context(), actor.ID))
}

func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())
	id := chi.URLParam(r, "id")

	found, err := h.orders.ByID(r.Context(), actor, id)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req cancelRequest
	if r.Body != nil {
		// Body is optional; a missing reason gets the default note.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cancelled, err := h.orders.Cancel(r.Context(), actor, id, req.Reason)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Order cancelled", slog.String("ID", id))
	web.RespondJSON(w, mLogger, http.StatusOK, cancelled)
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())

	list, err := h.orders.All(r.Context(), actor)
	if err != nil {
		h.respondOrderError(w, r, mLogger, "", err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())

	stats, err := h.orders.Stats(r.Context(), actor)
	if err != nil {
		h.respondOrderError(w, r, mLogger, "", err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, stats)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondInvalidBody(w, mLogger, err)
		return
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), actor, id, status, req.Note)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Order status updated", slog.String("ID", id), slog.String("status", req.Status))
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	actor := auth.ActorFrom(r.Context())
	id := chi.URLParam(r, "id")

	var payment order.PaymentInfo
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	paid, err := h.orders.MarkPaid(r.Context(), actor, id, payment)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, paid)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondOrderError maps order engine errors onto HTTP statuses.
func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, id string, err error) {
	switch {
	case errors.Is(err, ordererrors.ErrOrderNotFound):
		mLogger.WarnContext(r.Context(), "Order not found", "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
	case errors.Is(err, ordererrors.ErrPermissionDenied):
		mLogger.WarnContext(r.Context(), "Access denied", "ID", id)
		web.RespondError(w, mLogger, http.StatusForbidden, "Access denied")
	case errors.Is(err, ordererrors.ErrInvalidStatus):
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	default:
		mLogger.ErrorContext(r.Context(), "Order operation failed", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Order operation failed")
	}
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}
