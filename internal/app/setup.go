// Package app contains the application setup for the storefront.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kaozx001/project-nawatakum/internal/auth"
	authrest "github.com/kaozx001/project-nawatakum/internal/auth/transport/rest"
	"github.com/kaozx001/project-nawatakum/internal/cart"
	cartrest "github.com/kaozx001/project-nawatakum/internal/cart/transport/rest"
	"github.com/kaozx001/project-nawatakum/internal/catalog"
	catalogrest "github.com/kaozx001/project-nawatakum/internal/catalog/transport/rest"
	"github.com/kaozx001/project-nawatakum/internal/checkout"
	"github.com/kaozx001/project-nawatakum/internal/config"
	"github.com/kaozx001/project-nawatakum/internal/order"
	orderstore "github.com/kaozx001/project-nawatakum/internal/order/store"
	orderrest "github.com/kaozx001/project-nawatakum/internal/order/transport/rest"
	"github.com/kaozx001/project-nawatakum/pkg/messaging"
	"github.com/kaozx001/project-nawatakum/pkg/server"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// Dependencies holds the wired storefront services.
type Dependencies struct {
	AuthService  *auth.Service
	Catalog      *catalog.Store
	Carts        *cart.Registry
	OrderService order.OrderService
	Checkout     *checkout.Service
	Logger       *slog.Logger
}

// SetupDependencies constructs every service on top of the shared KV backend.
func SetupDependencies(kv storage.KV, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	userStore, err := auth.NewStore(kv)
	if err != nil {
		return nil, err
	}
	authService := auth.NewService(userStore, cfg.Checkout.AuthDelay, logger)

	ordersStore, err := orderstore.NewKVStore(kv)
	if err != nil {
		return nil, err
	}
	orderService := order.NewService(ordersStore, publisher, logger)

	carts := cart.NewRegistry(kv, cfg.Pricing, logger)
	checkoutService := checkout.NewService(orderService, cfg.Pricing, cfg.Checkout.ProcessingDelay, logger)

	return &Dependencies{
		AuthService:  authService,
		Catalog:      catalog.NewStore(catalog.Seed()),
		Carts:        carts,
		OrderService: orderService,
		Checkout:     checkoutService,
		Logger:       logger,
	}, nil
}

// SetupHttpHandler initializes the router and routes for the storefront.
// Used by tests to exercise the HTTP surface without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	authrest.NewHandler(deps.AuthService, deps.Logger).RegisterRoutes(mux)
	catalogrest.NewHandler(deps.Catalog, deps.Logger).RegisterRoutes(mux)
	cartrest.NewHandler(deps.Carts, deps.Catalog, deps.AuthService, deps.Logger).RegisterRoutes(mux)
	orderrest.NewHandler(deps.OrderService, deps.Checkout, deps.Carts, deps.AuthService, deps.Logger).RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the storefront HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}
