// Package rest exposes the read-only product catalog.
package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kaozx001/project-nawatakum/internal/catalog"
	"github.com/kaozx001/project-nawatakum/pkg/web"
)

type Handler struct {
	catalog *catalog.Store
	logger  *slog.Logger
}

func NewHandler(store *catalog.Store, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: store,
		logger:  logger.With("component", "catalog_rest"),
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.ByID)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger.With("request_id", middleware.GetReqID(r.Context()))
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.All())
}

func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger.With("request_id", middleware.GetReqID(r.Context()))
	id := chi.URLParam(r, "id")
	product, found := h.catalog.FindByID(id)
	if !found {
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product %s not found", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, product)
}
