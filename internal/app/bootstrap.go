package app

import (
	"fmt"
	"log"
	"strings"

	"founder-match/internal/config"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/delivery/http/routes"
	"founder-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(cfg, c.DB, routes.Deps{
		Logger:   logger,
		JWT:      c.JWT,
		Cache:    c.Cache,
		Oracle:   c.Oracle,
		Hub:      c.Hub,
		Notifier: ws.NewNotifier(c.Hub, logger),
	})
	if err := registry.Register(f); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	return &App{Fiber: f}, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
