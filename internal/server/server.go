// Package server boots the storefront: config, stores, identity, routes,
// and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

// Options tunes the boot sequence.
type Options struct {
	// Memory swaps MongoDB and Redis for in-process stores. Meant for local
	// development and smoke testing, not production.
	Memory bool
}

// Start boots the server and blocks until SIGINT/SIGTERM, then drains
// in-flight requests before returning.
func Start(opts Options) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		store docstore.Store
		rdb   *redis.Client
	)
	if opts.Memory {
		store = docstore.NewMemory()
	} else {
		mongoStore, err := docstore.ConnectMongo(ctx, config.MongoURI(), config.MongoDBName())
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer mongoStore.Close(context.Background()) //nolint:errcheck

		rdb = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		defer rdb.Close() //nolint:errcheck

		if config.Get("LOG_STORE", "") == "mongo" {
			mh := logger.NewMongoHandler(mongoStore.Database().Collection("logs"), slog.LevelInfo)
			defer mh.Close()
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		}
	}

	verifier := identity.NewJWTVerifier([]byte(config.JWTSecret()))
	roles := identity.NewClaimStore(rdb, store.Collection("users"))

	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:    controllers.NewAuthController(services.NewAuthService(store, verifier, roles)),
		Product: controllers.NewProductController(services.NewCatalogService(store, roles)),
		Cart:    controllers.NewCartController(services.NewCartService(store)),
		Order:   controllers.NewOrderController(services.NewOrderService(store)),
	}, verifier)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
