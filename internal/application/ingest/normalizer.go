// Package ingest convierte las filas crudas del Apps Script (mapas con
// claves legibles y tipado inconsistente) en los tipos canónicos del
// dominio. La política es coerción best-effort: una fila malformada
// nunca hace fallar el lote, cada campo cae a su default documentado.
package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// Orders normaliza las filas crudas de órdenes, una a una y en el mismo
// orden de entrada.
func Orders(rows []map[string]any) []entity.Order {
	orders := make([]entity.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, normalizeOrder(record(row)))
	}
	return orders
}

// Stock normaliza las filas crudas del snapshot de inventario.
func Stock(rows []map[string]any) []entity.StockItem {
	items := make([]entity.StockItem, 0, len(rows))
	for _, row := range rows {
		r := record(row)
		items = append(items, entity.StockItem{
			ItemID:          r.str("Item ID ML"),
			SKU:             r.str("SKU"),
			Titulo:          r.str("Título"),
			StockDisponible: clampNonNegative(r.intVal("Stock Disponible", 0)),
			Precio:          r.dec("Precio"),
			Estado:          r.str("Estado"),
		})
	}
	return items
}

func normalizeOrder(r record) entity.Order {
	fechaRaw := r.str("Fecha")
	fecha, ok := parseFecha(fechaRaw)

	tipoEnvio := r.str("Tipo Envío (Clasificado)")
	if tipoEnvio == "" {
		tipoEnvio = entity.TipoEnvioSinEnvio
	}

	return entity.Order{
		OrderID:     r.str("Order ID"),
		ItemID:      r.str("Item ID ML"),
		Fecha:       fecha,
		FechaValida: ok,
		FechaRaw:    fechaRaw,
		Hora:        r.str("Hora"),

		Producto:       r.str("Producto"),
		SKU:            r.str("SKU"),
		Cantidad:       atLeastOne(r.intVal("Cantidad", 1)),
		PrecioUnitario: r.dec("Precio Unitario"),
		TotalItem:      r.dec("Total Item"),
		ComisionML:     r.dec("Comisión Total ML"),
		NetoSinEnvio:   r.dec("Neto Sin Envío"),

		LogisticMode:       r.str("Logistic Mode"),
		TipoEnvio:          tipoEnvio,
		ShipmentID:         r.str("Shipment ID"),
		ShippingCostSeller: r.dec("Shipping Cost Seller"),
		BonificacionEnvio:  r.dec("Bonificación Envío"),

		MargenReal: r.dec("Margen Real Final"),

		MedioPago: r.str("Medio de Pago"),
		Cuotas:    atLeastOne(r.intVal("Cuotas", 1)),

		Buyer:               r.str("Buyer"),
		CiudadEntrega:       r.str("Ciudad Entrega"),
		DepartamentoEntrega: r.str("Departamento Entrega"),

		Estado:      r.str("Estado"),
		EstadoEnvio: r.str("Estado Envío"),
	}
}

// fechaLayouts en orden de probabilidad: el Apps Script emite ISO con o
// sin componente horario; planillas viejas usaban DD/MM/YYYY.
var fechaLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ── Coerción de campos ────────────────────────────────────────────────────────

// record envuelve una fila cruda con accessors de coerción segura.
// Todos los paths de fallo terminan en el default del campo; nunca se
// propaga un NaN ni un error hacia los agregados.
type record map[string]any

func (r record) str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return decimal.NewFromFloat(s).String()
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func (r record) dec(key string) decimal.Decimal {
	v, ok := r[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func (r record) intVal(key string, def int) int {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return int(d.IntPart())
	default:
		return def
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
