package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/ebank/ledger/infra/initializer"
	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/webapi"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

var errServerStopped = errors.New("server stopped before shutdown was requested")

// @title Ledger API
// @version 1.0.0
// @description Bank account ledger: customers, current and saving accounts, debit, credit, transfer and history.
// @contact.name API Support
// @license.name Apache 2.0
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("Failed to release dependencies", "error", err)
		}
	}()

	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"transfer_mode", cfg.Ledger.TransferMode,
	)
	return serve(ctx, fiberApp, ln, logger)
}

// serve runs the app on ln until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, fiberApp *fiber.App, ln net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberApp.Listener(ln)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return errServerStopped
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
