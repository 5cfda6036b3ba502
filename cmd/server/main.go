// Package main initializes and starts the todovault HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"fmt"

	nethttp "net/http"

	"github.com/atinyakov/todovault/internal/config"
	"github.com/atinyakov/todovault/internal/db"
	"github.com/atinyakov/todovault/internal/logger"
	"github.com/atinyakov/todovault/internal/repository"
	"github.com/atinyakov/todovault/internal/server/handler/http"
	"github.com/atinyakov/todovault/internal/service"
	"github.com/atinyakov/todovault/internal/token"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s, or def if s is empty (equivalent to cmp.Or for
// strings; cmp.Or requires Go 1.22 and this build targets Go 1.21).
func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func main() {
	// Load .env if present, then parse command-line and environment configuration.
	_ = godotenv.Load()
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("token signing secret is required (-s flag or JWT_SECRET)")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the credential store and token service. The signing secret
	// and connection are passed in here; nothing reads them ambiently.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	tokens := token.New(options.JWTSecret)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	todoService := service.NewTodoService(userRepo)

	// Create HTTP handlers for auth and todo endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	todoHandler := &http.TodoHandler{TodoService: todoService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, todoHandler, tokens, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
