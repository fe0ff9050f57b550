// Package keepalive serves the liveness page and Prometheus metrics so that
// hosting platforms which probe an HTTP port keep the bot running.
package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const aliveMessage = "Rui is alive"

type Server struct {
	app  *fiber.App
	port int
}

func New(port int) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Rui",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(loggingMiddleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(aliveMessage)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return &Server{app: app, port: port}
}

// App exposes the router, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens in the background. A failing listener is logged, never fatal.
func (s *Server) Start() {
	address := fmt.Sprintf(":%d", s.port)
	slog.Info("Starting keep-alive server",
		slog.String("type", "sys"),
		slog.String("address", address))

	go func() {
		if err := s.app.Listen(address); err != nil {
			slog.Error("Keep-alive server stopped",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("type", "sys"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("took", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		slog.LogAttrs(c.UserContext(), level, "HTTP request processed", attrs...)
		return err
	}
}
