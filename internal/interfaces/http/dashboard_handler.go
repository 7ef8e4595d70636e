package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/application/refresh"
	"github.com/mvdseller/ventas-api/internal/domain"
)

// DashboardHandler sirve el objeto agregado y sus vistas filtradas.
type DashboardHandler struct {
	refresher  *refresh.Refresher
	engine     *aggregate.Engine
	revalidate int // segundos del s-maxage
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(r *refresh.Refresher, e *aggregate.Engine, revalidateSeconds int) *DashboardHandler {
	return &DashboardHandler{refresher: r, engine: e, revalidate: revalidateSeconds}
}

// GetDashboard godoc
// @Summary      Objeto agregado completo del dashboard de ventas
// @Description  Devuelve todas las vistas derivadas (series, desgloses,
//               heatmap, waterfall, comparación mensual, cobertura de stock)
//               calculadas sobre el último lote de órdenes.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	snap, ok := h.refresher.Snapshot()
	if !ok {
		// Primer request antes de que el ciclo periódico complete:
		// refresco sincrónico único.
		fresh, err := h.refresher.Refresh(c.Context())
		if err != nil {
			return respondUpstreamError(c, err)
		}
		snap = fresh
	}

	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("s-maxage=%d, stale-while-revalidate", h.revalidate))
	return c.JSON(snap.Dashboard)
}

// GetHeatmap godoc
// @Summary      Heatmap día×hora, opcionalmente filtrado por mes o año
// @Tags         dashboard
// @Produce      json
// @Param        month  query  string  false  "Mes YYYY-MM"
// @Param        year   query  int     false  "Año calendario"
// @Router       /api/dashboard/heatmap [get]
func (h *DashboardHandler) GetHeatmap(c *fiber.Ctx) error {
	snap, ok := h.refresher.Snapshot()
	if !ok {
		return h.respondNoSnapshot(c)
	}

	orders := snap.Orders
	month := c.Query("month")
	if month != "" {
		if _, perr := time.Parse("2006-01", month); perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: "month debe tener formato YYYY-MM",
			})
		}
		orders = aggregate.FilterByMonth(orders, []string{month})
	} else if yearStr := c.Query("year"); yearStr != "" {
		year, perr := strconv.Atoi(yearStr)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: "year debe ser numérico",
			})
		}
		orders = aggregate.FilterByYear(orders, year)
	}

	return c.JSON(fiber.Map{
		"month": month,
		"year":  c.Query("year"),
		"cells": aggregate.Heatmap(orders),
	})
}

// GetProducts godoc
// @Summary      Ranking de productos, histórico o filtrado por meses
// @Tags         dashboard
// @Produce      json
// @Param        months  query  string  false  "Meses YYYY-MM separados por coma"
// @Param        metric  query  string  false  "revenue (default) | units"
// @Router       /api/dashboard/products [get]
func (h *DashboardHandler) GetProducts(c *fiber.Ctx) error {
	snap, ok := h.refresher.Snapshot()
	if !ok {
		return h.respondNoSnapshot(c)
	}

	metric := c.Query("metric", "revenue")
	if metric != "revenue" && metric != "units" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "metric debe ser revenue o units",
		})
	}

	var months []string
	if raw := c.Query("months"); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if _, perr := time.Parse("2006-01", m); perr != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Code: "INVALID_PARAMS", Message: "months debe listar claves YYYY-MM",
				})
			}
			months = append(months, m)
		}
	}

	orders := snap.Orders
	topN := aggregate.DefaultTopProducts
	if len(months) > 0 {
		orders = aggregate.FilterByMonth(orders, months)
		topN = aggregate.FilteredTopProducts
	}

	return c.JSON(fiber.Map{
		"months":          months,
		"metric":          metric,
		"availableMonths": aggregate.AvailableMonths(snap.Orders),
		"products":        aggregate.TopProducts(orders, metric, topN),
	})
}

// PostRefresh godoc
// @Summary      Dispara un refresco manual del agregado
// @Tags         dashboard
// @Produce      json
// @Router       /api/dashboard/refresh [post]
func (h *DashboardHandler) PostRefresh(c *fiber.Ctx) error {
	snap, err := h.refresher.Refresh(c.Context())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return c.JSON(fiber.Map{
		"generation":  snap.Generation,
		"generatedAt": snap.Dashboard.GeneratedAt,
		"orders":      len(snap.Orders),
		"stockItems":  len(snap.Stock),
	})
}

// respondNoSnapshot responde el error apropiado cuando todavía no hay
// agregado instalado: el del último ciclo fallido si lo hubo, 404 si
// nunca corrió un fetch.
func (h *DashboardHandler) respondNoSnapshot(c *fiber.Ctx) error {
	if lastErr := h.refresher.LastError(); lastErr != nil {
		return respondUpstreamError(c, lastErr)
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Code: "NO_SNAPSHOT", Message: domain.ErrNoSnapshot.Error(),
	})
}

// respondUpstreamError mapea la taxonomía de errores del pipeline a HTTP:
// configuración faltante → 503, upstream caído o roto → 502.
func respondUpstreamError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNoUpstreamURL) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "CONFIG_ERROR", Message: domain.ErrNoUpstreamURL.Error(),
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
		Code:    "UPSTREAM_ERROR",
		Message: "no se pudo obtener datos de la fuente",
		Details: err.Error(),
	})
}
