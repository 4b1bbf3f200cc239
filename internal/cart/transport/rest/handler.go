// Package rest provides HTTP handlers for cart operations. The handlers are
// the storefront call sites: they resolve products from the catalog and hand
// validated snapshots to the cart engine.
package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/internal/cart"
	"github.com/kaozx001/project-nawatakum/internal/catalog"
	"github.com/kaozx001/project-nawatakum/pkg/web"
)

type Handler struct {
	carts    *cart.Registry
	catalog  *catalog.Store
	authSvc  *auth.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(carts *cart.Registry, catalogStore *catalog.Store, authSvc *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		carts:    carts,
		catalog:  catalogStore,
		authSvc:  authSvc,
		validate: validator.New(),
		logger:   logger.With("component", "cart_rest"),
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.authSvc))
		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Get("/summary", h.GetSummary)
			r.Post("/items", h.AddItem)
			r.Route("/items/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateQuantity)
				r.Delete("/", h.RemoveItem)
			})
		})
	})
}

// cartView is the cart plus its derived numbers, what the storefront renders.
type cartView struct {
	Items   []cart.Item  `json:"items"`
	Count   int          `json:"count"`
	Summary cart.Summary `json:"summary"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartView{
		Items:   userCart.Items(),
		Count:   userCart.Count(),
		Summary: userCart.Summary(),
	})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, userCart.Summary())
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"omitempty,min=1"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondInvalidBody(w, mLogger, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, found := h.catalog.FindByID(req.ProductID)
	if !found {
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product %s not found", req.ProductID))
		return
	}

	if err := userCart.Add(cart.Product{
		ID:    product.ID,
		Name:  product.Name,
		Image: product.Image,
		Price: product.Price,
	}, req.Quantity); err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to add to cart", "product_id", req.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartView{
		Items:   userCart.Items(),
		Count:   userCart.Count(),
		Summary: userCart.Summary(),
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	// quantity <= 0 removes the line, same as an explicit delete.
	if err := userCart.SetQuantity(chi.URLParam(r, "id"), req.Quantity); err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to update quantity", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartView{
		Items:   userCart.Items(),
		Count:   userCart.Count(),
		Summary: userCart.Summary(),
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}
	if err := userCart.Remove(chi.URLParam(r, "id")); err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to remove from cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartView{
		Items:   userCart.Items(),
		Count:   userCart.Count(),
		Summary: userCart.Summary(),
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userCart, ok := h.userCart(w, r, mLogger)
	if !ok {
		return
	}
	if err := userCart.Clear(); err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to clear cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userCart resolves the actor's cart. The auth middleware guarantees an
// actor is present.
func (h *Handler) userCart(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*cart.Service, bool) {
	actor := auth.ActorFrom(r.Context())
	if actor == nil {
		web.RespondError(w, mLogger, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	userCart, err := h.carts.ForUser(actor.ID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Failed to load cart", "user_id", actor.ID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to load cart")
		return nil, false
	}
	return userCart, true
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}
