package routes

import (
	"founder-match/internal/config"
	"founder-match/internal/database"
	v1 "founder-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, deps Deps) error {
	if r == nil {
		return nil
	}

	return v1.Register(r, cfg, db, v1.Deps{
		Logger:   deps.Logger,
		JWT:      deps.JWT,
		Cache:    deps.Cache,
		Oracle:   deps.Oracle,
		Notifier: deps.Notifier,
	})
}
