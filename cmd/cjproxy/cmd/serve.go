package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/api/handlers"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/api/middleware"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/config"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/tokenstore"
	"github.com/tanguy-kabore/cjdropshipping-api/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CJ proxy API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	store, ready, cleanup, err := openTokenStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}
	defer cleanup()

	log.Info("token store ready", "backend", cfg.TokenStore.Backend)

	auth := cj.NewAuthenticator(
		cj.Credentials{Email: cfg.CJ.Email, APIKey: cfg.CJ.APIKey},
		store,
		cj.WithAuthBaseURL(cfg.CJ.BaseURL),
		cj.WithAuthHTTPClient(&http.Client{Timeout: cfg.CJ.AuthTimeout}),
	)
	guard := cj.NewGuard(store, auth)
	limiter := cj.NewRateLimiter(
		cfg.CJ.RateLimit.PerSecond,
		cfg.CJ.RateLimit.Burst,
		cfg.CJ.RateLimit.DailyLimit,
	)
	client := cj.NewClient(
		guard,
		cj.WithBaseURL(cfg.CJ.BaseURL),
		cj.WithHTTPClient(&http.Client{Timeout: cfg.CJ.RequestTimeout}),
		cj.WithRateLimiter(limiter),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(ready)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("CJ Dropshipping Proxy", Version))
	registerRoutes(api, client, limiter, store, auth, cfg)

	var keepalive *cj.Keepalive
	if cfg.Keepalive.Enabled {
		keepalive, err = cj.NewKeepalive(guard, cfg.Keepalive.Interval, log)
		if err != nil {
			return fmt.Errorf("creating token keepalive: %w", err)
		}
		keepalive.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	if keepalive != nil {
		<-keepalive.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func registerRoutes(
	api huma.API,
	client *cj.Client,
	limiter *cj.RateLimiter,
	store tokenstore.Store,
	auth *cj.Authenticator,
	cfg *config.Config,
) {
	handlers.RegisterAuthRoutes(api, handlers.NewAuthHandler(store, auth))
	handlers.RegisterProductRoutes(
		api,
		handlers.NewProductsHandler(client, cfg.CJ.VariantCountry),
	)
	handlers.RegisterVariantRoutes(api, handlers.NewVariantsHandler(client))
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(client, cfg.Shipping))
	handlers.RegisterAccountRoutes(api, handlers.NewAccountHandler(client))
	handlers.RegisterLogisticsRoutes(
		api,
		handlers.NewLogisticsHandler(client, cfg.Shipping),
	)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))
}

// openTokenStore builds the configured token store backend. The returned
// Pinger backs /readyz: postgres pings the pool; the file backend has no
// external dependency (the token file is created lazily), so a running
// process is a ready process.
func openTokenStore(
	ctx context.Context,
	cfg *config.Config,
) (tokenstore.Store, handlers.Pinger, func(), error) {
	switch cfg.TokenStore.Backend {
	case "postgres":
		pg, err := tokenstore.NewPostgresStore(ctx, cfg.TokenStore.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return pg, pg, pg.Close, nil
	default:
		fs := tokenstore.NewFileStore(cfg.TokenStore.Path)
		ready := handlers.PingerFunc(func(context.Context) error { return nil })
		return fs, ready, func() {}, nil
	}
}
