// Package server initializes and runs the chat application server.
// It wires the Postgres-backed repositories, the user and message services,
// the optional push notifier and the HTTP frontend, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/webchat-dev/webchat/internal/logging"
	"github.com/webchat-dev/webchat/internal/server/auth"
	"github.com/webchat-dev/webchat/internal/server/config"
	"github.com/webchat-dev/webchat/internal/server/messages"
	"github.com/webchat-dev/webchat/internal/server/notify"
	"github.com/webchat-dev/webchat/internal/server/shared/db"
	"github.com/webchat-dev/webchat/internal/server/users"
	"github.com/webchat-dev/webchat/internal/server/web"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	repos          db.RepositoryManager
	userService    *users.Service
	messageService *messages.Service
	web            *web.Server
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// an empty topic disables push dispatch entirely
	var notifier notify.Notifier
	if c.NtfyTopic != "" {
		notifier = notify.NewClient(c.NtfyEndpoint, c.NtfyTopic, c.NtfyClickURL)
	}

	us := users.NewService(rm.Users(), auth.NewPasswordHasher(), c)
	ms := messages.NewService(rm.Messages(), notifier, logger, c.NotifyTimeout)

	sessions := web.NewSessionManager([]byte(c.SecretKey), c.SessionValidityDuration)

	srv, err := web.NewServer(logger, us, ms, sessions)
	if err != nil {
		return nil, fmt.Errorf("web server init error: %w", err)
	}

	return &App{
		config:         c,
		logger:         logger,
		repos:          rm,
		userService:    us,
		messageService: ms,
		web:            srv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.web.Handler(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server...", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
