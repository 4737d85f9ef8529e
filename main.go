package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/connectrandom/internal/config"
	"github.com/msomdec/connectrandom/internal/handler"
	"github.com/msomdec/connectrandom/internal/mail"
	"github.com/msomdec/connectrandom/internal/repository/sqlite"
	"github.com/msomdec/connectrandom/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	mailer, err := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPTimeout)
	if err != nil {
		slog.Error("failed to configure smtp sender", "error", err)
		os.Exit(1)
	}

	ledger := service.NewOtpLedger(cfg.OtpTTL)
	// A burst of 3 codes per email, one more every 100 seconds.
	resendLimiter := service.NewTokenBucket(3, 100*time.Second)

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret)
	signupService := service.NewSignupService(ledger, db.Users(), mailer, resendLimiter, cfg.BcryptCost)
	messagingService := service.NewMessagingService(db.Messages())
	directoryService := service.NewDirectoryService(db.Users())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, signupService, messagingService, directoryService, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
