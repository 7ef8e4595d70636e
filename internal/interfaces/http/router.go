package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/application/refresh"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Refresher         *refresh.Refresher
	Engine            *aggregate.Engine
	RevalidateSeconds int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	dashboard := api.Group("/dashboard")
	h := NewDashboardHandler(deps.Refresher, deps.Engine, deps.RevalidateSeconds)
	dashboard.Get("/", h.GetDashboard)
	dashboard.Get("/heatmap", h.GetHeatmap)
	dashboard.Get("/products", h.GetProducts)
	dashboard.Post("/refresh", h.PostRefresh)

	stockHandler := NewStockHandler(deps.Refresher, deps.Engine)
	dashboard.Get("/stock", stockHandler.GetStock)
}
