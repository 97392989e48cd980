package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homemenu/backend/internal/middleware"
)

type Handlers struct {
	Auth  *AuthHandler
	Menu  *MenuHandler
	Rooms *RoomsHandler
}

func RegisterRoutes(app *fiber.App, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, h.Auth.Me)

	menuRoutes := api.Group("/menu", authMiddleware.RequireAuth)
	menuRoutes.Get("/", h.Menu.Get)
	menuRoutes.Put("/", h.Menu.Update)
	menuRoutes.Post("/items", h.Menu.AddItem)
	menuRoutes.Put("/items/:id", h.Menu.UpdateItem)
	menuRoutes.Delete("/items/:id", h.Menu.DeleteItem)

	roomRoutes := api.Group("/rooms", authMiddleware.RequireAuth)
	roomRoutes.Post("/", h.Rooms.Create)
	roomRoutes.Post("/:code/join", h.Rooms.Join)

	sharedRoutes := api.Group("/shared", authMiddleware.RequireAuth)
	sharedRoutes.Get("/", h.Rooms.ListShared)
	sharedRoutes.Delete("/:id", h.Rooms.RemoveShared)
}
