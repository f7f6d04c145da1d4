package setup

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thought-echo/app"
	"thought-echo/config"
	"thought-echo/middleware"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// NewFiberApp creates and configures a new Fiber application
func NewFiberApp(cfg *config.Config, logger *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "thought-echo",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          CustomErrorHandler(logger),
		ReadBufferSize:        8192,
	})
}

// CustomErrorHandler returns a custom error handler for Fiber
func CustomErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		requestID := middleware.GetRequestID(c)

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err,
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}

// NewServer builds the fully wired web UI for application.
func NewServer(cfg *config.Config, application *app.App) *fiber.App {
	fiberApp := NewFiberApp(cfg, application.Logger)
	ApplyMiddleware(fiberApp, application.Logger)
	RegisterRoutes(fiberApp, application)
	return fiberApp
}

// Serve runs the web UI until ctx is done or SIGINT/SIGTERM arrives, then
// shuts the server down gracefully.
func Serve(ctx context.Context, cfg *config.Config, application *app.App) error {
	fiberApp := NewServer(cfg, application)
	logger := application.Logger

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr(), "env", cfg.Env)
		errCh <- fiberApp.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
