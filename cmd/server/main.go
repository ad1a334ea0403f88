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
	"dumptrac/internal/database"
	"dumptrac/internal/handlers"
	"dumptrac/internal/logger"
	"dumptrac/internal/services"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ FATAL ERROR: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	log.Info().Msg("═══════════════════════════════════════════════════════════════════")
	log.Info().Msg("🚀 DUMPTRAC API SERVER STARTING")
	log.Info().Msg("═══════════════════════════════════════════════════════════════════")

	if cfg.EnvFileLoaded {
		log.Info().Msg("✅ .env file loaded successfully")
	} else {
		log.Warn().Msg("⚠️  .env file not found, using environment variables from system")
	}

	if err := cfg.RequireDatabase(); err != nil {
		log.Error().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Error().Msg("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Error().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal().Err(err).Msg("missing database configuration")
	}

	log.Info().Msg("🔌 Connecting to database...")
	db, err := database.Connect(cfg.DB.URL, log)
	if err != nil {
		log.Error().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Error().Err(err).Msg("❌ FATAL ERROR: Database connection failed")
		log.Error().Msg("   Check the DATABASE_URL format, credentials and that Postgres is reachable")
		log.Error().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		os.Exit(1)
	}
	defer db.Close()
	log.Info().Msg("✅ Database connection established")

	log.Info().Msg("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("❌ FATAL ERROR: Database migrations failed")
		os.Exit(1)
	}
	log.Info().Msg("✅ Database migrations completed")

	store := database.NewStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := newNotifier(ctx, cfg, log)

	keepalive := services.NewKeepalive(store, cfg.Keepalive.Interval, log)
	go keepalive.Run(ctx)
	log.Info().Dur("interval", cfg.Keepalive.Interval).Msg("✅ Keepalive job started")

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:          store,
		Notifier:       notifier,
		AllowedOrigins: cfg.AllowedOrigins(),
		Log:            log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Msg("═══════════════════════════════════════════════════════════════════")
	log.Info().Msg("✅ ALL INITIALIZATION COMPLETE")
	log.Info().Msgf("🚀 Server starting on http://localhost:%d", cfg.HTTP.Port)
	log.Info().Msg("═══════════════════════════════════════════════════════════════════")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Int("port", cfg.HTTP.Port).Msg("❌ FATAL ERROR: Server failed to start")
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("👋 Server stopped")
}

// newNotifier prefers base64 credentials, then a credentials file. It returns
// nil when push notifications cannot be initialised; reports are then only
// logged by the handler.
func newNotifier(ctx context.Context, cfg *config.Config, log zerolog.Logger) services.Notifier {
	fb := cfg.Firebase

	if fb.CredentialsBase64 != "" {
		fcm, err := services.NewFCMServiceFromBase64(ctx, fb.CredentialsBase64, fb.Topic)
		if err == nil {
			log.Info().Str("topic", fb.Topic).Msg("✅ Firebase Cloud Messaging initialized from base64 credentials")
			return fcm
		}
		log.Warn().Err(err).Msg("⚠️  Failed to initialize FCM from base64 (push notifications disabled)")
	} else if fb.CredentialsFile != "" {
		fcm, err := services.NewFCMService(ctx, fb.CredentialsFile, fb.Topic)
		if err == nil {
			log.Info().Str("topic", fb.Topic).Msg("✅ Firebase Cloud Messaging initialized from file")
			return fcm
		}
		log.Warn().Err(err).Msg("⚠️  Failed to initialize FCM from file (push notifications disabled)")
	}

	log.Warn().Msg("⚠️  Firebase credentials not configured (push notifications disabled)")
	return nil
}
