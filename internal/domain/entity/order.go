// Package entity define los tipos canónicos del dominio de ventas.
// Las órdenes son inmutables una vez construidas por el normalizador;
// todos los agregados se derivan de ellas en cada ciclo de refresco.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoEnvioSinEnvio es la categoría por defecto cuando la fila no trae
// tipo de envío clasificado. Participa como bucket visible en los
// desgloses; no se descarta.
const TipoEnvioSinEnvio = "SIN ENVÍO"

// Order es una línea vendida con su desglose financiero completo.
// Todos los montos vienen de la planilla ya calculados; acá no se
// recomputa nada, solo se agrega.
type Order struct {
	OrderID string
	ItemID  string // id de la publicación; cruza con StockItem.ItemID

	// Fecha calendario (naive, zona del vendedor) y hora cruda tal como
	// llega de la planilla ("HH:MM:SS" o timestamp completo). FechaValida
	// indica si Fecha pudo parsearse; las filas inválidas se excluyen de
	// las series temporales pero no del resto de los desgloses.
	Fecha       time.Time
	FechaValida bool
	FechaRaw    string
	Hora        string

	Producto       string
	SKU            string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	TotalItem      decimal.Decimal // ingreso bruto de la línea
	ComisionML     decimal.Decimal
	NetoSinEnvio   decimal.Decimal

	LogisticMode       string
	TipoEnvio          string // clasificado; TipoEnvioSinEnvio si falta
	ShipmentID         string
	ShippingCostSeller decimal.Decimal
	BonificacionEnvio  decimal.Decimal // rebate; el costo neto puede quedar negativo

	MargenReal decimal.Decimal // firmado, puede ser negativo

	MedioPago string // código crudo (visa, account_money, ...)
	Cuotas    int    // 1 = contado

	Buyer               string
	CiudadEntrega       string
	DepartamentoEntrega string

	Estado      string
	EstadoEnvio string
}

// SKUKey devuelve la clave de agrupación por SKU. Cuando el SKU viene
// vacío se deriva del nombre del producto truncado, para no colapsar
// productos sin SKU distintos en un mismo bucket.
func (o Order) SKUKey() string {
	if o.SKU != "" {
		return o.SKU
	}
	name := o.Producto
	if name == "" {
		return "SIN-SKU"
	}
	runes := []rune(name)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return "~" + string(runes)
}

// EnvioNeto devuelve el costo de envío neto de la línea (costo - bonificación).
// El signo se preserva: una bonificación mayor al costo produce un crédito.
func (o Order) EnvioNeto() decimal.Decimal {
	return o.ShippingCostSeller.Sub(o.BonificacionEnvio)
}

// DayKey devuelve la clave calendario YYYY-MM-DD de la orden.
// Solo tiene sentido si FechaValida es true.
func (o Order) DayKey() string {
	return o.Fecha.Format("2006-01-02")
}

// MonthKey devuelve la clave YYYY-MM (mes con cero a la izquierda, para
// que el orden lexicográfico coincida con el cronológico).
func (o Order) MonthKey() string {
	return o.Fecha.Format("2006-01")
}
