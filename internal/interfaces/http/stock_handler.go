package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/application/refresh"
	"github.com/mvdseller/ventas-api/internal/domain"
)

// StockHandler sirve la tabla de cobertura de stock con filtros y orden.
type StockHandler struct {
	refresher *refresh.Refresher
	engine    *aggregate.Engine
}

// NewStockHandler construye el handler.
func NewStockHandler(r *refresh.Refresher, e *aggregate.Engine) *StockHandler {
	return &StockHandler{refresher: r, engine: e}
}

// GetStock godoc
// @Summary      Cobertura de stock con búsqueda, filtro de estado y orden
// @Description  Filtra y ordena las filas ya calculadas del último
//               snapshot; los KPIs se mantienen sobre el total sin filtrar.
// @Tags         dashboard
// @Produce      json
// @Param        search  query  string  false  "Texto sobre título o SKU"
// @Param        estado  query  string  false  "all | alert | zero | ok"
// @Param        sort    query  string  false  "dias | stock | velocidad | nombre"
// @Success      200  {object}  dto.StockCoverageDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	snap, ok := h.refresher.Snapshot()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NO_SNAPSHOT", Message: domain.ErrNoSnapshot.Error(),
		})
	}

	var req dto.StockQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	coverage := snap.Dashboard.StockCoverage
	rows := aggregate.FilterStockRows(coverage.Rows, req, h.engine.StockParams().AlertDays)
	rows = aggregate.SortStockRows(rows, req.Sort)

	// KPIs sobre el total, tabla sobre el filtro: misma semántica que la
	// vista original.
	coverage.Rows = rows
	return c.JSON(coverage)
}
