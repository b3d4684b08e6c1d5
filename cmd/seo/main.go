package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/handlers"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/platform/config"
	pfirestore "finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/platform/observability"
	platformstorage "finitefield.org/hanko-seo/internal/platform/storage"
	"finitefield.org/hanko-seo/internal/repositories"
	firestoreRepo "finitefield.org/hanko-seo/internal/repositories/firestore"
	"finitefield.org/hanko-seo/internal/repositories/memory"
	"finitefield.org/hanko-seo/internal/schema"
	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/services"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("seo")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load(ctx)
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise application", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.registry.Close(closeCtx); err != nil {
			logger.Warn("repository close error", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("hanko-seo listening", zap.String("backend", cfg.Storage.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

type app struct {
	router   http.Handler
	registry repositories.Registry
}

// newApp wires repositories, seeds them from the content tree and builds the router.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	content := cms.NewClient(cfg.Content.Dir)
	if _, err := services.Seed(ctx, content, registry, cfg.Content.SettingsFile); err != nil {
		_ = registry.Close(ctx)
		return nil, err
	}

	locales, err := i18n.NewLocales(cfg.Locales.Default, cfg.Locales.Available)
	if err != nil {
		_ = registry.Close(ctx)
		return nil, err
	}

	urls, err := platformstorage.NewURLBuilder(cfg.Storage)
	if err != nil {
		_ = registry.Close(ctx)
		return nil, err
	}
	images := media.NewResolver(urls)
	resolver := schema.NewResolver(schema.NewRegistry(), schema.WithAllowedTypes(cfg.SchemaTypes...))
	assembler := seo.NewAssembler(seo.Options{
		Resolver: resolver,
		Images:   images,
		Locales:  locales,
		App:      schema.AppDefaults{Name: cfg.App.Name, URL: cfg.App.URL},
		Defaults: seo.Defaults{
			Robots:      cfg.Defaults.Robots,
			OgType:      cfg.Defaults.OgType,
			TwitterCard: cfg.Defaults.TwitterCard,
		},
		Limits: cfg.Limits,
	})

	heads, err := services.NewHeadService(services.HeadServiceDeps{
		Content:   content,
		Metadata:  registry.Metadata(),
		Settings:  registry.Settings(),
		Assembler: assembler,
		Images:    images,
		Locales:   locales,
		AppURL:    cfg.App.URL,
	})
	if err != nil {
		_ = registry.Close(ctx)
		return nil, err
	}

	httpLogger := logger.Named("http")
	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(httpLogger),
			observability.TraceMiddleware(cfg.Firestore.ProjectID),
			observability.RecoveryMiddleware(httpLogger),
			observability.RequestLoggerMiddleware(),
		),
		handlers.WithTimeout(cfg.Server.WriteTimeout),
		handlers.WithRoutes(
			handlers.NewSchemaHandlers(resolver, cfg.SchemaTypes).Routes,
			handlers.NewHeadHandlers(heads, locales).Routes,
		),
	)
	return &app{router: router, registry: registry}, nil
}

func newRegistry(cfg config.Config) (repositories.Registry, error) {
	if !cfg.UsesFirestore() {
		return memory.NewRegistry(nil), nil
	}
	return firestoreRepo.NewRegistry(pfirestore.NewProvider(cfg.Firestore))
}
