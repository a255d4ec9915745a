package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/casaflow/casaflow/internal/bus"
	"github.com/casaflow/casaflow/internal/config"
	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
	"github.com/casaflow/casaflow/internal/mcp"
	"github.com/casaflow/casaflow/internal/recompute"
	"github.com/casaflow/casaflow/internal/sqlite"
	"github.com/casaflow/casaflow/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := os.Stdout
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	contactRepo := sqlite.NewContactRepository(db)
	changeRepo := sqlite.NewStatusChangeRepository(db)
	leadChangeRepo := sqlite.NewLeadChangeRepository(db)
	propertyRepo := sqlite.NewPropertyRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	fileRepo := sqlite.NewFileRepository(db)

	var recomputer contact.StatusRecomputer
	if cfg.Recompute.URL != "" {
		recomputer = recompute.NewClient(cfg.Recompute.URL, time.Duration(cfg.Recompute.TimeoutSeconds)*time.Second, logger)
	} else {
		recomputer = recompute.Disabled{Logger: logger}
	}

	refreshBus := bus.NewRefreshBus()
	refreshBus.Subscribe(func(event *bus.RefreshEvent) {
		logger.Debug("refresh signal", "contact_id", event.ContactID, "source", event.Source)
	})

	contactSvc := contact.NewService(contactRepo, changeRepo, fileRepo, recomputer, refreshBus, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	timelineSvc := timeline.NewService(changeRepo, leadChangeRepo, propertyRepo, propertyRepo, activityRepo, fileRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := refreshBus.Dispatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("refresh dispatcher stopped", "error", err)
		}
	}()

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, cancel, logger, contactSvc, timelineSvc)
		return
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Error("auth.jwt_secret is required in http mode")
		os.Exit(1)
	}

	contactsHandler := transport.NewContactsHandler(contactSvc, timelineSvc, activitySvc)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := transport.NewServer(logger, addr, cfg.Auth.JWTSecret, contactsHandler)

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, server, cancel)
}

func runStdioMode(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, contactSvc *contact.Service, timelineSvc *timeline.Service) {
	logger.Info("starting stdio transport")

	mcpServer := mcp.NewServer(mcp.Config{
		Contacts: contactSvc,
		Timeline: timelineSvc,
		Actor:    contact.Actor{ID: "mcp-local", Role: contact.RoleAdmin},
		Logger:   logger,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *transport.Server, cancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancel()
	ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()

	logger.Info("shutting down")
	if err := server.Stop(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
