package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scenestudio/internal/adapter/repo"
	"scenestudio/internal/http/handlers"
	httpapi "scenestudio/internal/http/httpapi"
	"scenestudio/internal/infra"
	"scenestudio/internal/infra/geoip"
	"scenestudio/internal/middleware"
	imageprovider "scenestudio/internal/providers/image"
	"scenestudio/internal/providers/prompt"
	"scenestudio/internal/storage"
)

func main() {
	// Load .env (optional).
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	projects := repo.NewProjectRepository(pool)
	if err := projects.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure database schema")
	}

	var screenshots *storage.ScreenshotStore
	if cfg.ScreenshotDir != "" {
		screenshots, err = storage.NewScreenshotStore(cfg.ScreenshotDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare screenshot store")
		}
	}

	primary := imageprovider.NewQueueAdapter(imageprovider.QueueOptions{
		APIKey:  cfg.QueueImageAPIKey,
		BaseURL: cfg.QueueImageBaseURL,
		Model:   cfg.QueueImageModel,
		Logger:  &logger,
	})
	secondary := imageprovider.NewStructuredAdapter(imageprovider.StructuredOptions{
		APIKey:    cfg.StructuredImageAPIKey,
		BaseURL:   cfg.StructuredImageBaseURL,
		ProxyPath: cfg.StructuredImageProxy,
		Logger:    &logger,
	})
	generator := imageprovider.NewDefaultChain(&logger, primary, secondary)

	var translator prompt.Translator
	if cfg.GeminiAPIKey != "" {
		translator, err = prompt.NewGeminiTranslator(prompt.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure scene translator")
		}
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, free-text scene instructions will be no-ops")
	}

	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable, generation analytics will omit country")
	} else if resolver != nil {
		country = resolver.CountryCode
		if closer, ok := resolver.(*geoip.Resolver); ok {
			defer closer.Close()
		}
	}

	app := handlers.NewApp(logger, projects, generator, translator)
	app.Screenshots = screenshots
	router := httpapi.NewRouter(app, cfg, logger, country)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
