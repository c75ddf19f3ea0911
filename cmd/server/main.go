// Package main initializes and starts the lab inventory HTTP server,
// setting up configuration, logging, the JSON-file repositories,
// services, handlers, and sessions.
package main

import (
	"cmp"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/config"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/logger"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/middleware"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/repository"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/server/handler/http"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/service"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// sessionLifetime is how long an idle login session stays valid.
const sessionLifetime = 30 * time.Minute

func main() {
	// Parse command-line, config-file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if err := os.MkdirAll(options.DataDir, 0o755); err != nil {
		zapLogger.Fatal("cannot create data directory", zap.Error(err))
	}

	// Initialize the JSON-file repositories.
	inventoryRepo, err := repository.NewFileInventoryRepository(
		filepath.Join(options.DataDir, "inventory.json"), zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init inventory repository", zap.Error(err))
	}
	historyRepo, err := repository.NewFileHistoryRepository(
		filepath.Join(options.DataDir, "history.json"), zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init history repository", zap.Error(err))
	}

	// Optional audit-log compaction.
	if keep := options.Settings.HistoryKeep; keep > 0 {
		repository.StartHistoryCompaction(context.Background(), historyRepo,
			time.Hour, keep, zapLogger)
	}

	// Initialize business-logic services.
	inventoryService := service.NewInventoryService(inventoryRepo)
	historyService := service.NewHistoryService(historyRepo)
	authService, err := service.NewAuthService(options.Settings.AdminPassword)
	if err != nil {
		zapLogger.Fatal("cannot init auth service", zap.Error(err))
	}
	notifier := service.NewEmailNotifier(service.MailSettings{
		Enabled:      options.Settings.NotifyEnabled,
		Server:       options.Settings.SMTPServer,
		Port:         options.Settings.SMTPPort,
		UseTLS:       options.Settings.SMTPUseTLS,
		Username:     options.Settings.SMTPUsername,
		Password:     options.Settings.SMTPPassword,
		Sender:       options.Settings.SenderEmail,
		AdminEmail:   options.Settings.AdminEmail,
		ManagerEmail: options.Settings.ManagerEmail,
		Domain:       options.Settings.EmailDomain,
	}, zapLogger)

	// Session cookie store. Sessions do not survive a restart without a
	// configured key.
	sessionKey := []byte(options.Settings.SessionKey)
	if len(sessionKey) == 0 {
		zapLogger.Warn("SESSION_KEY not set, generating a random key; sessions will be invalid after restart")
		sessionKey = make([]byte, 32)
		if _, err := rand.Read(sessionKey); err != nil {
			zapLogger.Fatal("cannot generate session key", zap.Error(err))
		}
	}
	sessionStore := sessions.NewCookieStore(sessionKey)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	}

	// Create HTTP handlers and the session middleware.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessionStore}
	inventoryHandler := &http.InventoryHandler{
		Inventory: inventoryService,
		History:   historyService,
		Notifier:  notifier,
		Log:       zapLogger,
	}
	adminHandler := &http.AdminHandler{Inventory: inventoryService, Log: zapLogger}
	historyHandler := &http.HistoryHandler{HistoryService: historyService, Log: zapLogger}
	sessionAuth := &middleware.SessionAuth{Store: sessionStore}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, inventoryHandler, adminHandler,
		historyHandler, sessionAuth, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	case sig := <-stop:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}
}
