package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// StockParams umbrales del cálculo de cobertura. Vienen de configuración;
// los defaults replican la operación actual (ventana 90d, alerta 15d,
// observación 30d).
type StockParams struct {
	WindowDays int
	AlertDays  int
	WatchDays  int
}

// DefaultStockParams parámetros de cobertura por defecto.
func DefaultStockParams() StockParams {
	return StockParams{WindowDays: 90, AlertDays: 15, WatchDays: 30}
}

// StockCoverage cruza el snapshot de inventario con el historial de
// órdenes de la ventana y calcula velocidad de venta y días de cobertura
// por item.
//
// La velocidad divide por días CON ventas, no por los días totales de la
// ventana: dividir por días totales subestimaría la demanda de items con
// venta intermitente o que pasaron parte de la ventana sin stock.
func StockCoverage(
	items []entity.StockItem,
	orders []entity.Order,
	now time.Time,
	p StockParams,
) dto.StockCoverageDTO {
	cutoff := now.AddDate(0, 0, -p.WindowDays)

	// Índices por item id y por SKU para no recorrer todas las órdenes
	// por cada item del snapshot. Guardan posiciones para poder unir
	// ambos cruces sin contar dos veces la orden que calza por los dos.
	byItemID := make(map[string][]int)
	bySKU := make(map[string][]int)
	for i, o := range orders {
		if !o.FechaValida || o.Fecha.Before(cutoff) {
			continue
		}
		if o.ItemID != "" {
			byItemID[o.ItemID] = append(byItemID[o.ItemID], i)
		}
		if o.SKU != "" {
			bySKU[o.SKU] = append(bySKU[o.SKU], i)
		}
	}

	result := dto.StockCoverageDTO{
		Rows:            make([]dto.StockRowDTO, 0, len(items)),
		ValorTotalStock: decimal.Zero,
		WindowDays:      p.WindowDays,
	}

	for _, item := range items {
		// El cruce acepta cualquiera de las dos llaves: una orden cuenta
		// si coincide por item id O por SKU.
		matched := byItemID[item.ItemID]
		if item.SKU != "" {
			matched = append(matched[:len(matched):len(matched)], bySKU[item.SKU]...)
		}

		seen := make(map[int]struct{}, len(matched))
		saleDays := make(map[string]struct{})
		units := 0
		for _, idx := range matched {
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			o := orders[idx]
			saleDays[o.DayKey()] = struct{}{}
			units += o.Cantidad
		}

		velocity := decimal.Zero
		if len(saleDays) > 0 {
			velocity = decimal.NewFromInt(int64(units)).
				Div(decimal.NewFromInt(int64(len(saleDays)))).Round(4)
		}

		stock := item.StockDisponible
		coverage := 0
		switch {
		case velocity.IsPositive():
			coverage = int(decimal.NewFromInt(int64(stock)).Div(velocity).Round(0).IntPart())
		case stock > 0:
			coverage = dto.DiasCoberturaInfinito
		}

		valorStock := decimal.NewFromInt(int64(stock)).Mul(item.Precio)

		row := dto.StockRowDTO{
			ItemID:           item.ItemID,
			SKU:              item.SKU,
			Titulo:           item.Titulo,
			StockActual:      stock,
			Precio:           item.Precio,
			Estado:           item.Estado,
			UnidadesVendidas: units,
			DiasConVentas:    len(saleDays),
			VelocidadDiaria:  velocity,
			DiasCobertura:    coverage,
			ValorStock:       valorStock,
			Clasificacion:    classifyCoverage(stock, coverage, p),
		}
		result.Rows = append(result.Rows, row)

		result.ValorTotalStock = result.ValorTotalStock.Add(valorStock)
		if row.Clasificacion == dto.CoberturaReposicion {
			result.AlertaSkus++
		}
		if stock == 0 {
			result.SinStock++
		}
	}

	result.TotalSkus = len(result.Rows)
	return result
}

func classifyCoverage(stock, coverage int, p StockParams) string {
	switch {
	case stock == 0:
		return dto.CoberturaSinStock
	case coverage < p.AlertDays:
		return dto.CoberturaReposicion
	case coverage < p.WatchDays:
		return dto.CoberturaObservar
	default:
		return dto.CoberturaSana
	}
}

// FilterStockRows aplica búsqueda de texto y filtro por bucket de estado
// sobre las filas ya calculadas. Operación pura, sin recomputar nada.
func FilterStockRows(rows []dto.StockRowDTO, req dto.StockQueryRequest, alertDays int) []dto.StockRowDTO {
	out := make([]dto.StockRowDTO, 0, len(rows))
	q := strings.ToLower(strings.TrimSpace(req.Search))
	for _, r := range rows {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Titulo), q) &&
			!strings.Contains(strings.ToLower(r.SKU), q) {
			continue
		}
		switch req.Estado {
		case "alert":
			if r.DiasCobertura >= alertDays || r.DiasCobertura <= 0 {
				continue
			}
		case "zero":
			if r.StockActual != 0 {
				continue
			}
		case "ok":
			if r.DiasCobertura < alertDays {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// SortStockRows ordena una copia de las filas según el criterio pedido:
// dias (cobertura ascendente, default), stock (desc), velocidad (desc) o
// nombre (alfabético por título).
func SortStockRows(rows []dto.StockRowDTO, sortBy string) []dto.StockRowDTO {
	out := make([]dto.StockRowDTO, len(rows))
	copy(out, rows)
	switch sortBy {
	case "stock":
		sort.SliceStable(out, func(i, j int) bool { return out[i].StockActual > out[j].StockActual })
	case "velocidad":
		sort.SliceStable(out, func(i, j int) bool { return out[i].VelocidadDiaria.GreaterThan(out[j].VelocidadDiaria) })
	case "nombre":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Titulo) < strings.ToLower(out[j].Titulo)
		})
	default: // "dias"
		sort.SliceStable(out, func(i, j int) bool { return out[i].DiasCobertura < out[j].DiasCobertura })
	}
	return out
}
