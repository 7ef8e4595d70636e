package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/application/ingest"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

const (
	// DefaultTopProducts tope del ranking de productos del dashboard.
	DefaultTopProducts = 10
	// FilteredTopProducts tope del ranking con filtro de meses activo.
	FilteredTopProducts = 8

	// minorShareThreshold participación mínima para que una categoría
	// conserve bucket propio en el desglose de medios de pago; por
	// debajo se pliega en "Otros".
	minorShareThreshold = 0.04

	otrosLabel   = "Otros"
	contadoLabel = "Contado"
	sinTitulo    = "Sin título"
)

// medioPagoLabels mapea el código crudo de MercadoPago a la etiqueta de
// presentación. Códigos no listados pasan sin cambios.
var medioPagoLabels = map[string]string{
	"account_money": "Cuenta ML",
	"visa":          "Visa",
	"master":        "Mastercard",
	"oca":           "OCA",
	"debvisa":       "Débito Visa",
	"debmaster":     "Débito Master",
	"abitab":        "Abitab",
	"redpagos":      "Redpagos",
	"amex":          "Amex",
}

// MedioPagoLabel devuelve la etiqueta de presentación de un código de
// medio de pago; los códigos desconocidos pasan tal cual.
func MedioPagoLabel(code string) string {
	if label, ok := medioPagoLabels[code]; ok {
		return label
	}
	return code
}

// tipoEnvioColors paleta fija por tipo de envío; parte del contrato con
// el gráfico de torta.
var tipoEnvioColors = map[string]string{
	"FULL":            "#FFE500",
	"FLEX":            "#FF6B35",
	"MERCADO ENVIOS":  "#88AAFF",
	"ENVIO POR FUERA": "#AA88FF",
	"RETIRO":          "#44DDAA",
	"SIN ENVÍO":       "#555577",
	"OTRO TIPO":       "#888899",
}

const tipoEnvioDefaultColor = "#555577"

// ── Agrupador genérico ────────────────────────────────────────────────────────

// bucket acumulador de una categoría. El orden de descubrimiento se
// preserva para que los empates de los sorts estables queden en orden
// de aparición en el input.
type bucket struct {
	key     string
	count   int
	units   int
	revenue decimal.Decimal
	margen  decimal.Decimal
}

// groupBy agrupa las órdenes por la clave extraída, preservando el orden
// de primer encuentro. Claves vacías devueltas por keyFn se omiten.
func groupBy(orders []entity.Order, keyFn func(entity.Order) string) []*bucket {
	index := make(map[string]*bucket)
	var buckets []*bucket
	for _, o := range orders {
		key := keyFn(o)
		if key == "" {
			continue
		}
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.count++
		b.units += o.Cantidad
		b.revenue = b.revenue.Add(o.TotalItem)
		b.margen = b.margen.Add(o.MargenReal)
	}
	return buckets
}

// ── Desgloses concretos ───────────────────────────────────────────────────────

// TipoEnvioBreakdown desglose por tipo de envío clasificado, descendente
// por cantidad de órdenes. El default "SIN ENVÍO" es un bucket visible.
func TipoEnvioBreakdown(orders []entity.Order) []dto.TipoEnvioDTO {
	buckets := groupBy(orders, func(o entity.Order) string { return o.TipoEnvio })
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].count > buckets[j].count })

	out := make([]dto.TipoEnvioDTO, 0, len(buckets))
	for _, b := range buckets {
		color, ok := tipoEnvioColors[b.key]
		if !ok {
			color = tipoEnvioDefaultColor
		}
		out = append(out, dto.TipoEnvioDTO{Tipo: b.key, Count: b.count, Color: color})
	}
	return out
}

// MedioPagoBreakdown desglose por medio de pago con plegado de
// categorías menores: todo bucket con menos del 4% del total de órdenes
// se suma en "Otros" (no se descarta). El resultado final queda
// ascendente por cantidad porque el gráfico dibuja de menor a mayor.
func MedioPagoBreakdown(orders []entity.Order) []dto.MedioPagoDTO {
	buckets := groupBy(orders, func(o entity.Order) string { return MedioPagoLabel(o.MedioPago) })

	total := 0
	for _, b := range buckets {
		total += b.count
	}

	var kept []*bucket
	otros := &bucket{key: otrosLabel}
	for _, b := range buckets {
		if total > 0 && float64(b.count)/float64(total) < minorShareThreshold {
			otros.count += b.count
			otros.revenue = otros.revenue.Add(b.revenue)
		} else {
			kept = append(kept, b)
		}
	}
	if otros.count > 0 {
		kept = append(kept, otros)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].count < kept[j].count })

	out := make([]dto.MedioPagoDTO, 0, len(kept))
	for _, b := range kept {
		out = append(out, dto.MedioPagoDTO{Medio: b.key, Count: b.count, Revenue: b.revenue})
	}
	return out
}

// CuotasBreakdown desglose por financiamiento. Cuotas=1 se etiqueta
// "Contado"; el resto "N cuotas". El orden es contado primero y después
// numérico ascendente: "10 cuotas" va detrás de "2 cuotas" aunque
// alfabéticamente iría antes.
func CuotasBreakdown(orders []entity.Order) []dto.CuotasDTO {
	type cuotaBucket struct {
		n     int
		count int
	}
	index := make(map[int]*cuotaBucket)
	var buckets []*cuotaBucket
	for _, o := range orders {
		b, ok := index[o.Cuotas]
		if !ok {
			b = &cuotaBucket{n: o.Cuotas}
			index[o.Cuotas] = b
			buckets = append(buckets, b)
		}
		b.count++
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].n < buckets[j].n })

	out := make([]dto.CuotasDTO, 0, len(buckets))
	for _, b := range buckets {
		label := contadoLabel
		if b.n > 1 {
			label = fmt.Sprintf("%d cuotas", b.n)
		}
		out = append(out, dto.CuotasDTO{Cuotas: label, Count: b.count})
	}
	return out
}

// TopProducts ranking de productos por ingresos o unidades, truncado a
// topN. Empates quedan en orden de aparición (sort estable).
// metric: "revenue" (default) o "units".
func TopProducts(orders []entity.Order, metric string, topN int) []dto.ProductRankDTO {
	skuByProduct := make(map[string]string)
	buckets := groupBy(orders, func(o entity.Order) string {
		name := o.Producto
		if name == "" {
			name = sinTitulo
		}
		if _, ok := skuByProduct[name]; !ok {
			skuByProduct[name] = o.SKU
		}
		return name
	})

	if metric == "units" {
		sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].units > buckets[j].units })
	} else {
		sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].revenue.GreaterThan(buckets[j].revenue) })
	}

	if topN > 0 && len(buckets) > topN {
		buckets = buckets[:topN]
	}

	out := make([]dto.ProductRankDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.ProductRankDTO{
			Name:    b.key,
			SKU:     skuByProduct[b.key],
			Units:   b.units,
			Revenue: b.revenue,
			Margen:  b.margen,
		})
	}
	return out
}

// SkuPerformance tabla completa por SKU: unidades, ingresos, comisión,
// envío neto y margen con su porcentaje. Ordenada descendente por
// ingresos. Los SKUs vacíos agrupan bajo la clave derivada del producto
// para no colapsar productos sin SKU distintos entre sí.
func SkuPerformance(orders []entity.Order) []dto.SkuPerformanceDTO {
	type skuAcc struct {
		sku      string
		name     string
		units    int
		revenue  decimal.Decimal
		comision decimal.Decimal
		envio    decimal.Decimal
		margen   decimal.Decimal
	}
	index := make(map[string]*skuAcc)
	var accs []*skuAcc
	for _, o := range orders {
		key := o.SKUKey()
		a, ok := index[key]
		if !ok {
			a = &skuAcc{sku: key, name: o.Producto}
			index[key] = a
			accs = append(accs, a)
		}
		a.units += o.Cantidad
		a.revenue = a.revenue.Add(o.TotalItem)
		a.comision = a.comision.Add(o.ComisionML)
		a.envio = a.envio.Add(o.EnvioNeto())
		a.margen = a.margen.Add(o.MargenReal)
	}

	sort.SliceStable(accs, func(i, j int) bool { return accs[i].revenue.GreaterThan(accs[j].revenue) })

	out := make([]dto.SkuPerformanceDTO, 0, len(accs))
	for _, a := range accs {
		margenPct := decimal.Zero
		if a.revenue.IsPositive() {
			margenPct = a.margen.Div(a.revenue).Mul(hundred).Round(2)
		}
		out = append(out, dto.SkuPerformanceDTO{
			SKU:       a.sku,
			Name:      a.name,
			Units:     a.units,
			Revenue:   a.revenue,
			Comision:  a.comision,
			Envio:     a.envio,
			Margen:    a.margen,
			MargenPct: margenPct,
		})
	}
	return out
}

// DepartamentoBreakdown desglose por departamento de entrega con nombre
// canonizado; órdenes sin departamento se omiten. Descendente por cantidad.
func DepartamentoBreakdown(orders []entity.Order) []dto.RegionDTO {
	buckets := groupBy(orders, func(o entity.Order) string {
		return ingest.CanonicalDepartamento(o.DepartamentoEntrega)
	})
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].count > buckets[j].count })

	out := make([]dto.RegionDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.RegionDTO{Region: b.key, Count: b.count, Revenue: b.revenue})
	}
	return out
}

// ZonasMontevideo rollup por barrio de las entregas en Montevideo. El
// barrio viene en "Ciudad Entrega"; se matchea contra el set canónico y
// lo que no matchea pasa con su texto crudo como categoría propia.
func ZonasMontevideo(orders []entity.Order) []dto.RegionDTO {
	buckets := groupBy(orders, func(o entity.Order) string {
		if !strings.Contains(ingest.NormalizeKey(o.DepartamentoEntrega), "montevideo") {
			return ""
		}
		raw := strings.TrimSpace(o.CiudadEntrega)
		if raw == "" {
			return ""
		}
		if canon, ok := ingest.MatchZone(raw, ingest.BarriosMontevideo); ok {
			return canon
		}
		return raw
	})
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].count > buckets[j].count })

	out := make([]dto.RegionDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.RegionDTO{Region: b.key, Count: b.count, Revenue: b.revenue})
	}
	return out
}
