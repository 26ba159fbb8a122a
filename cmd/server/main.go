package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"billed/internal/auth"
	"billed/internal/config"
	"billed/internal/handler"
	"billed/internal/store"
	"billed/internal/view"
	"billed/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	log := logger.New()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load DB config")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHours, err := strconv.ParseInt(os.Getenv("JWT_EXPIRATION_HOURS"), 10, 64)
	if err != nil {
		log.Warn().Msg("Invalid JWT_EXPIRATION_HOURS, defaulting to 24")
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	if err := os.MkdirAll(uploadsDir, os.ModePerm); err != nil {
		log.Fatal().Err(err).Str("dir", uploadsDir).Msg("Failed to create uploads directory")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto-migrate database")
	}

	// --- Wiring ---
	codec := auth.NewTokenCodec(jwtSecret, jwtExpHours)
	renderer, err := view.NewRenderer(log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse view templates")
	}

	billStore := store.NewBillStore(dbPool, uploadsDir)
	userStore := store.NewUserStore(dbPool)
	authService := auth.NewService(userStore, codec, log)

	billHandler := handler.NewBillHandler(billStore, uploadsDir, renderer, log)
	authHandler := handler.NewAuthHandler(authService, billStore, renderer, log)

	router := handler.NewRouter(billHandler, authHandler, codec, log)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", serverPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
