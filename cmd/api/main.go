package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/bootstrap"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/http/handlers"
	httpapi "github.com/andrymamboro/MAMBORO-AI-v.01/internal/http/httpapi"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra/geoip"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra/google"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()
	svc, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build services")
	}
	defer svc.Close()

	countries, err := geoip.Open(cfg.GeoIPDB)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer countries.Close()

	app := handlers.NewApp(svc.Studio, logger)
	app.Keys = svc.Keys
	app.JWTSecret = cfg.Auth.JWTSecret
	app.SessionTTL = cfg.Auth.SessionTTL
	app.MaxUploadBytes = cfg.MaxUploadBytes
	if cfg.Auth.GoogleClientID != "" {
		app.GoogleVerifier = google.NewVerifier(cfg.Auth.GoogleIssuer, cfg.Auth.GoogleClientID)
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		JWTSecret:       cfg.Auth.JWTSecret,
		AdminToken:      cfg.Auth.AdminToken,
		DefaultLocale:   "en",
		CountryLookup:   countries.Lookup(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("store", cfg.Store.Driver).
			Int("daily_quota", svc.Quota.Max()).
			Msg("api listening")
		if err := server.Start(); err != nil {
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
