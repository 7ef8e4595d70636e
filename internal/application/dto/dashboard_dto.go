package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDTO es el objeto agregado completo que consume la capa de
// presentación. Se reconstruye entero en cada ciclo de refresco; los
// nombres JSON conservan el contrato del dashboard original.
type DashboardDTO struct {
	Summary SummaryDTO `json:"summary"`

	// Series temporales. RevenueByDay es dispersa (solo días con ventas);
	// RevenueCurrentMonth/RevenuePrevMonth son densas (día 1..hoy) porque
	// el gráfico de comparación superpone ambas sobre el mismo eje.
	RevenueByDay        []DayPointDTO        `json:"revenueByDay"`
	RevenueByMonth      []MonthPointDTO      `json:"revenueByMonth"`
	RevenueCurrentMonth []AlignedDayPointDTO `json:"revenueCurrentMonth"`
	RevenuePrevMonth    []AlignedDayPointDTO `json:"revenuePrevMonth"`

	// Comparación mes actual vs mismo período parcial del mes anterior.
	CurrentMonth PeriodSummaryDTO `json:"currentMonth"`
	PrevMonth    PeriodSummaryDTO `json:"prevMonth"`
	Trends       TrendsDTO        `json:"trends"`

	TopProducts           []ProductRankDTO    `json:"topProducts"`
	SkuPerformance        []SkuPerformanceDTO `json:"skuPerformance"`
	TipoEnvioBreakdown    []TipoEnvioDTO      `json:"tipoEnvioBreakdown"`
	MedioPagoBreakdown    []MedioPagoDTO      `json:"medioPagoBreakdown"`
	CuotasBreakdown       []CuotasDTO         `json:"cuotasBreakdown"`
	DepartamentoBreakdown []RegionDTO         `json:"departamentoBreakdown"`
	BarriosMontevideo     []RegionDTO         `json:"barriosMontevideo"`
	Heatmap               []HeatmapCellDTO    `json:"heatmap"`
	Waterfall             []WaterfallStepDTO  `json:"waterfall"`
	StockCoverage         StockCoverageDTO    `json:"stockCoverage"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// SummaryDTO totales globales de todo el historial cargado.
type SummaryDTO struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalMargen     decimal.Decimal `json:"totalMargen"`
	TotalComisiones decimal.Decimal `json:"totalComisiones"`
	TotalEnvios     decimal.Decimal `json:"totalEnvios"` // costo - bonificación, firmado
	TotalOrders     int             `json:"totalOrders"`
	TotalUnits      int             `json:"totalUnits"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	AvgMargen       decimal.Decimal `json:"avgMargen"`
	MargenPct       decimal.Decimal `json:"margenPct"`
}

// DayPointDTO punto de la serie diaria dispersa.
type DayPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Margen  decimal.Decimal `json:"margen"`
	Orders  int             `json:"orders"`
}

// MonthPointDTO punto de la serie mensual.
type MonthPointDTO struct {
	Month   string          `json:"month"` // YYYY-MM, ordenable como string
	Revenue decimal.Decimal `json:"revenue"`
	Margen  decimal.Decimal `json:"margen"`
	Orders  int             `json:"orders"`
}

// AlignedDayPointDTO punto de las series densas de comparación mensual,
// indexado por día del mes (1..díaActual). Los días sin ventas aportan
// una entrada en cero, no una omisión.
type AlignedDayPointDTO struct {
	Day     int             `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Margen  decimal.Decimal `json:"margen"`
	Orders  int             `json:"orders"`
}

// PeriodSummaryDTO KPIs de una ventana mensual (completa o parcial).
type PeriodSummaryDTO struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Margen        decimal.Decimal `json:"margen"`
	Comisiones    decimal.Decimal `json:"comisiones"`
	Envios        decimal.Decimal `json:"envios"` // neto, firmado
	Orders        int             `json:"orders"`
	Units         int             `json:"units"`
	MargenPct     decimal.Decimal `json:"margenPct"`
	AvgMargen     decimal.Decimal `json:"avgMargen"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// TrendsDTO variación porcentual mes actual vs período comparable del mes
// anterior. Un puntero nil significa "sin dato de referencia" (el período
// anterior fue cero o no existe) y el frontend no dibuja flecha; distinto
// de un 0% real.
type TrendsDTO struct {
	Revenue       *decimal.Decimal `json:"revenue,omitempty"`
	Margen        *decimal.Decimal `json:"margen,omitempty"`
	Comisiones    *decimal.Decimal `json:"comisiones,omitempty"`
	Envios        *decimal.Decimal `json:"envios,omitempty"`
	Orders        *decimal.Decimal `json:"orders,omitempty"`
	Units         *decimal.Decimal `json:"units,omitempty"`
	MargenPct     *decimal.Decimal `json:"margenPct,omitempty"`
	AvgMargen     *decimal.Decimal `json:"avgMargen,omitempty"`
	AvgOrderValue *decimal.Decimal `json:"avgOrderValue,omitempty"`
}

// ProductRankDTO entrada del ranking de productos.
type ProductRankDTO struct {
	Name    string          `json:"name"`
	SKU     string          `json:"sku"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	Margen  decimal.Decimal `json:"margen"`
}

// SkuPerformanceDTO fila de la tabla de performance por SKU.
type SkuPerformanceDTO struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
	Comision  decimal.Decimal `json:"comision"`
	Envio     decimal.Decimal `json:"envio"` // neto, firmado
	Margen    decimal.Decimal `json:"margen"`
	MargenPct decimal.Decimal `json:"margenPct"`
}

// TipoEnvioDTO bucket del desglose por tipo de envío. El color viaja en
// la respuesta porque la paleta es parte del contrato con el gráfico.
type TipoEnvioDTO struct {
	Tipo  string `json:"tipo"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// MedioPagoDTO bucket del desglose por medio de pago (etiqueta ya mapeada).
type MedioPagoDTO struct {
	Medio   string          `json:"medio"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CuotasDTO bucket del desglose por financiamiento.
type CuotasDTO struct {
	Cuotas string `json:"cuotas"` // "Contado" o "N cuotas"
	Count  int    `json:"count"`
}

// RegionDTO bucket geográfico (departamento o barrio).
type RegionDTO struct {
	Region  string          `json:"region"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// HeatmapCellDTO celda de la grilla densa 7×24. Siempre se emiten las
// 168 celdas, incluso en cero.
type HeatmapCellDTO struct {
	Day     int             `json:"day"`  // 0=domingo .. 6=sábado
	Hour    int             `json:"hour"` // 0..23
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// WaterfallStepDTO paso del desglose financiero secuencial. Los pasos
// delta llevan Value firmado, Base para el apilado y Bar = |Value|; el
// paso final de margen (IsTotal) arranca de 0 y restata el margen real
// calculado aparte, sin conciliar contra la suma de los deltas.
type WaterfallStepDTO struct {
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
	Base    decimal.Decimal `json:"base"`
	Bar     decimal.Decimal `json:"bar"`
	Total   decimal.Decimal `json:"total"` // acumulado luego del paso
	Color   string          `json:"color"`
	IsTotal bool            `json:"isTotal"`
}
