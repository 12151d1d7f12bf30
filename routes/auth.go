package routes

import (
	"github.com/gofiber/fiber/v2"

	authHandlers "tarweej.app/handlers/auth"
)

func registerAuthRoutes(app *fiber.App) {
	handler := authHandlers.NewAuthHandler()

	group := app.Group("/auth")
	group.Post("/login", handler.Login)
}
