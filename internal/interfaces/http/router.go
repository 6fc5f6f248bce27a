package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/rbac-api/internal/application/auth"
	"github.com/jhoicas/rbac-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AccountUC *usecase.AccountUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/status", authHandler.Status)

	users := api.Group("/users")
	accountHandler := NewAccountHandler(deps.AccountUC)
	users.Get("/", accountHandler.List)
	users.Post("/", accountHandler.Create)
	// Las rutas fijas van antes de /:id para que Fiber no las capture como ID.
	users.Get("/search", accountHandler.Search)
	users.Get("/roles", accountHandler.ListRoles)
	users.Get("/username/:username", accountHandler.GetByUsername)
	users.Get("/role/:role", accountHandler.ListByRole)
	users.Get("/:id", accountHandler.GetByID)
	users.Put("/:id", accountHandler.Update)
	users.Delete("/:id", accountHandler.Delete)
	users.Put("/:id/role", accountHandler.ChangeRole)
}
