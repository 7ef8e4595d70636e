package dto

import "github.com/shopspring/decimal"

// ── Cobertura de stock ────────────────────────────────────────────────────────

// Clasificación de cobertura de un item.
const (
	CoberturaSinStock   = "sin_stock"  // stock en cero
	CoberturaReposicion = "reposicion" // cobertura < umbral de alerta
	CoberturaObservar   = "observar"   // cobertura < umbral de observación
	CoberturaSana       = "sana"
)

// DiasCoberturaInfinito es el centinela para items con stock pero sin
// ventas en la ventana: velocidad cero implica cobertura "infinita".
// El frontend lo dibuja como "∞".
const DiasCoberturaInfinito = 999

// StockRowDTO fila calculada de la tabla de cobertura.
type StockRowDTO struct {
	ItemID           string          `json:"itemId"`
	SKU              string          `json:"sku"`
	Titulo           string          `json:"titulo"`
	StockActual      int             `json:"stockActual"`
	Precio           decimal.Decimal `json:"precio"`
	Estado           string          `json:"estado"`
	UnidadesVendidas int             `json:"unidadesVendidas"`
	DiasConVentas    int             `json:"diasConVentas"`
	VelocidadDiaria  decimal.Decimal `json:"velocidadDiaria"` // unidades / días con ventas
	DiasCobertura    int             `json:"diasCobertura"`
	ValorStock       decimal.Decimal `json:"valorStock"`
	Clasificacion    string          `json:"clasificacion"`
}

// StockCoverageDTO tabla de cobertura más sus KPIs.
type StockCoverageDTO struct {
	Rows            []StockRowDTO   `json:"rows"`
	TotalSkus       int             `json:"totalSkus"`
	AlertaSkus      int             `json:"alertaSkus"`
	SinStock        int             `json:"sinStock"`
	ValorTotalStock decimal.Decimal `json:"valorTotalStock"`
	WindowDays      int             `json:"windowDays"`
}

// StockQueryRequest parámetros de GET /api/dashboard/stock. Son
// operaciones puras de filtrado/orden sobre las filas ya calculadas.
type StockQueryRequest struct {
	Search string `query:"search"` // texto sobre título o SKU
	Estado string `query:"estado"` // all | alert | zero | ok
	Sort   string `query:"sort"`   // dias | stock | velocidad | nombre
}
