package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/referral-portal/internal/cache"
	"github.com/magabrotheeeer/referral-portal/internal/config"
	"github.com/magabrotheeeer/referral-portal/internal/http/handlers/pages"
	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/registry"
	"github.com/magabrotheeeer/referral-portal/web"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.Config
	cache  *cache.Cache
}

// New собирает приложение. Redis необязателен: если адрес не задан или
// сервер недоступен при старте, сводки идут напрямую в удалённый сервис.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.portal.New"

	renderer, err := pages.NewRenderer(web.Templates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registryClient := registry.NewClient(registry.Endpoints{
		Login:    cfg.Registry.LoginURL,
		Register: cfg.Registry.RegisterURL,
		Summary:  cfg.Registry.SummaryURL,
	}, cfg.Registry.Timeout)

	deps := Deps{
		Registry:  registryClient,
		Summaries: registryClient,
		Renderer:  renderer,
	}

	var cacheRedis *cache.Cache
	if cfg.RedisConnection.Address != "" {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("summary cache disabled", sl.Op(op), sl.Err(err))
		} else {
			deps.Summaries = cache.NewSummaries(logger, registryClient, cacheRedis, cfg.RedisConnection.SummaryTTL)
			deps.Cache = cacheRedis
			logger.Info("summary cache enabled",
				slog.String("address", cfg.RedisConnection.Address),
				slog.Duration("ttl", cfg.RedisConnection.SummaryTTL),
			)
		}
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, deps)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cfg:    cfg,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeCache()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeCache()
		return err
	}
}

func (a *App) closeCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close cache", sl.Err(err))
	}
}
