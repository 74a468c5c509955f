package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/application/inventory"
	"github.com/depotix/depotix-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *inventory.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	JWTSecret        string
	DefaultLang      language.Tag
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", LangMiddleware(deps.DefaultLang), AuthMiddleware(deps.JWTSecret))
	inv := api.Group("/inventory")

	// Items
	itemHandler := NewItemHandler(deps.ItemUC, deps.Replenishment, deps.Log)
	inv.Post("/items", RequireRole(jwt.RoleAdmin), itemHandler.Create)
	inv.Get("/items", itemHandler.List)
	inv.Get("/items/:id", itemHandler.GetByID)
	inv.Get("/items/:id/breakdown", itemHandler.Breakdown)
	inv.Get("/reorder-suggestions", itemHandler.ReorderSuggestions)

	// Stock movements (preview antes de :id)
	movHandler := NewMovementHandler(deps.RegisterMovement, deps.Log)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleStaff)
	inv.Post("/stock-movements/preview", movHandler.Preview)
	inv.Post("/stock-movements", writers, movHandler.Create)
	inv.Get("/stock-movements", movHandler.List)
	inv.Get("/stock-movements/:id", movHandler.GetByID)
}
