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

	"dumptrac/internal/config"
	"dumptrac/internal/dashboard"
	"dumptrac/internal/logger"
	"dumptrac/internal/services"
	"dumptrac/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ FATAL ERROR: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	log.Info().Msg("🚀 DUMPTRAC WEB STARTING")

	geocoder := services.NewGeocodingService(cfg.GoogleMapsAPIKey, &http.Client{Timeout: 10 * time.Second})
	if geocoder.Enabled() {
		log.Info().Msg("✅ Reverse geocoding enabled")
	} else {
		log.Warn().Msg("⚠️  GOOGLE_MAPS_API_KEY not set, location suggestions disabled")
	}

	dash := dashboard.New(dashboard.NewMapView(time.Local), time.Local, log)

	server, err := web.NewServer(web.Config{
		Dashboard: dash,
		Geocoder:  geocoder,
		Log:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ FATAL ERROR: failed to build web server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.WebPort),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("🌍 Pages served on http://localhost:%d", cfg.HTTP.WebPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("❌ web server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("👋 Web stopped")
}
