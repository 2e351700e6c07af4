package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rideshare-backend/internal/config"
	"rideshare-backend/internal/database"
	"rideshare-backend/internal/events"
	"rideshare-backend/internal/handlers"
	"rideshare-backend/internal/logging"
	"rideshare-backend/internal/services"
	"rideshare-backend/internal/websocket"

	"github.com/joho/godotenv"
)

// notifyTimeout bounds one background delivery to Kafka and FCM.
const notifyTimeout = 10 * time.Second

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("❌ FATAL ERROR: invalid configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("═══════════════════════════════════════════════════════════════════")
	logger.Info("🚀 RIDESHARE BACKEND SERVER STARTING")
	logger.Info("═══════════════════════════════════════════════════════════════════")
	if envErr != nil {
		logger.Warn("⚠️  .env file not found, using environment variables from system")
	} else {
		logger.Info("✅ .env file loaded successfully")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// In-memory store, seeded with the demo account and catalog
	store := database.NewMemoryStore()
	logger.Info("🌱 Seeding store with initial data...")
	if err := database.Seed(ctx, store, logger); err != nil {
		logger.Error("❌ FATAL ERROR: seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("✅ Store seeded")

	// WebSocket hub
	logger.Info("🔌 Initializing WebSocket hub...")
	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("✅ WebSocket hub running")

	// The hub never blocks; network notifiers run in the background
	notifiers := events.Fanout{wsHub}
	var external events.Fanout

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		external = append(external, publisher)
		logger.Info("✅ Kafka booking events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("⚠️  KAFKA_BROKERS not set, booking events stay in-process")
	}

	if fcm := initFCM(ctx, cfg, store, logger); fcm != nil {
		external = append(external, fcm)
	}

	var background *events.Async
	if len(external) > 0 {
		background = events.NewAsync(external, notifyTimeout, logger)
		notifiers = append(notifiers, background)
	}

	bookings := services.NewBookingService(store, notifiers, logger)

	router := handlers.NewRouter(handlers.Dependencies{
		Store:          store,
		Bookings:       bookings,
		Hub:            wsHub,
		Logger:         logger,
		DemoUserID:     cfg.DemoUserID,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("═══════════════════════════════════════════════════════════════════")
		logger.Info("✅ SERVER READY", "addr", srv.Addr)
		logger.Info("═══════════════════════════════════════════════════════════════════")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("🛑 Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("❌ FATAL ERROR: server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ graceful shutdown failed", "error", err)
	}
	if background != nil {
		if err := background.Wait(shutdownCtx); err != nil {
			logger.Warn("⚠️  pending booking events dropped at shutdown", "error", err)
		}
	}
	logger.Info("👋 Server stopped")
}

// initFCM enables push notifications when Firebase credentials are configured.
// Base64 credentials win over a file path.
func initFCM(ctx context.Context, cfg config.ServerConfig, store database.Store, logger *slog.Logger) *services.FCMService {
	var (
		fcm *services.FCMService
		err error
	)
	switch {
	case cfg.FirebaseCredentialsBase64 != "":
		fcm, err = services.NewFCMServiceFromBase64(ctx, cfg.FirebaseCredentialsBase64, store, logger)
	case cfg.FirebaseCredentialsFile != "":
		fcm, err = services.NewFCMService(ctx, cfg.FirebaseCredentialsFile, store, logger)
	default:
		logger.Info("⚠️  Firebase credentials not set, push notifications disabled")
		return nil
	}
	if err != nil {
		logger.Warn("⚠️  Failed to initialize FCM, push notifications disabled", "error", err)
		return nil
	}
	logger.Info("✅ FCM push notifications enabled")
	return fcm
}
