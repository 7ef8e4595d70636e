package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// Engine arma el objeto agregado completo a partir de las listas
// canónicas de órdenes y stock. No tiene estado mutable entre corridas:
// cada Build parte de cero y devuelve una estructura fresca.
//
// El reloj se inyecta porque la comparación de períodos y la ventana de
// stock dependen de "hoy"; con un reloj fijo el resultado es
// determinista de punta a punta.
type Engine struct {
	stock StockParams
	now   func() time.Time
}

// NewEngine construye el motor. now en nil usa time.Now.
func NewEngine(stock StockParams, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{stock: stock, now: now}
}

// Build corre todas las agregaciones sobre el lote. Las órdenes se
// recorren en modo lectura; ningún builder depende de la salida de otro,
// salvo la cobertura de stock que cruza ambas listas de entrada.
func (e *Engine) Build(orders []entity.Order, stockItems []entity.StockItem) *dto.DashboardDTO {
	now := e.now()
	comparison := ComparePeriods(orders, now)

	return &dto.DashboardDTO{
		Summary: Summarize(orders),

		RevenueByDay:        RevenueByDay(orders),
		RevenueByMonth:      RevenueByMonth(orders),
		RevenueCurrentMonth: comparison.CurrentByDay,
		RevenuePrevMonth:    comparison.PrevByDay,

		CurrentMonth: comparison.Current,
		PrevMonth:    comparison.Previous,
		Trends:       comparison.Trends,

		TopProducts:           TopProducts(orders, "revenue", DefaultTopProducts),
		SkuPerformance:        SkuPerformance(orders),
		TipoEnvioBreakdown:    TipoEnvioBreakdown(orders),
		MedioPagoBreakdown:    MedioPagoBreakdown(orders),
		CuotasBreakdown:       CuotasBreakdown(orders),
		DepartamentoBreakdown: DepartamentoBreakdown(orders),
		BarriosMontevideo:     ZonasMontevideo(orders),
		Heatmap:               Heatmap(orders),
		Waterfall:             Waterfall(orders),
		StockCoverage:         StockCoverage(stockItems, orders, now, e.stock),

		GeneratedAt: now,
	}
}

// StockParams expone los umbrales configurados (los handlers los
// necesitan para filtrar sin recomputar).
func (e *Engine) StockParams() StockParams {
	return e.stock
}

// Summarize totales globales de todo el historial.
func Summarize(orders []entity.Order) dto.SummaryDTO {
	var revenue, margen, comisiones, enviosBruto, bonif decimal.Decimal
	units := 0
	for _, o := range orders {
		revenue = revenue.Add(o.TotalItem)
		margen = margen.Add(o.MargenReal)
		comisiones = comisiones.Add(o.ComisionML)
		enviosBruto = enviosBruto.Add(o.ShippingCostSeller)
		bonif = bonif.Add(o.BonificacionEnvio)
		units += o.Cantidad
	}

	count := len(orders)
	avgOrderValue := decimal.Zero
	avgMargen := decimal.Zero
	if count > 0 {
		n := decimal.NewFromInt(int64(count))
		avgOrderValue = revenue.Div(n).Round(2)
		avgMargen = margen.Div(n).Round(2)
	}
	margenPct := decimal.Zero
	if revenue.IsPositive() {
		margenPct = margen.Div(revenue).Mul(hundred).Round(2)
	}

	return dto.SummaryDTO{
		TotalRevenue:    revenue,
		TotalMargen:     margen,
		TotalComisiones: comisiones,
		TotalEnvios:     enviosBruto.Sub(bonif),
		TotalOrders:     count,
		TotalUnits:      units,
		AvgOrderValue:   avgOrderValue,
		AvgMargen:       avgMargen,
		MargenPct:       margenPct,
	}
}
