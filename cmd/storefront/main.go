package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaozx001/project-nawatakum/internal/app"
	"github.com/kaozx001/project-nawatakum/internal/config"
	"github.com/kaozx001/project-nawatakum/pkg/bootstrap"
	"github.com/kaozx001/project-nawatakum/pkg/config/configloader"
	"github.com/kaozx001/project-nawatakum/pkg/messaging"
	natspkg "github.com/kaozx001/project-nawatakum/pkg/nats"
	"golang.org/x/sync/errgroup"
)

const appName = "storefront"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads configuration, opens the local storage backend, and starts the
// HTTP and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	kv, err := bootstrap.NewStorage(cfg.Storage.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}
	logger.Info("Local storage ready", slog.String("dir", cfg.Storage.Dir))

	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.Nats.Enabled {
		nc, err := natspkg.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()
		js, err := natspkg.NewJetStreamContext(nc)
		if err != nil {
			return fmt.Errorf("failed to create JetStream context: %w", err)
		}
		publisher = natspkg.NewPublisher(js)
		logger.Info("Storefront events enabled", slog.String("url", cfg.Nats.Url))
	}

	deps, err := app.SetupDependencies(kv, publisher, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up dependencies: %w", err)
	}
	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{Addr: cfg.PProf.Addr}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
