package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Medios de pago
// ──────────────────────────────────────────────────────────────────────────────

// TestMedioPagoBreakdown_PliegueEnOtros las categorías con menos del 4%
// de las órdenes se suman en "Otros" (no se descartan) y el resultado
// final queda ascendente por cantidad.
func TestMedioPagoBreakdown_PliegueEnOtros(t *testing.T) {
	var orders []entity.Order
	// 100 órdenes: 50 visa, 47 master, 2 oca (2%), 1 amex (1%).
	for i := 0; i < 50; i++ {
		orders = append(orders, venta(t, "2025-03-01", 10, 1, conMedioPago("visa")))
	}
	for i := 0; i < 47; i++ {
		orders = append(orders, venta(t, "2025-03-01", 20, 2, conMedioPago("master")))
	}
	for i := 0; i < 2; i++ {
		orders = append(orders, venta(t, "2025-03-01", 5, 1, conMedioPago("oca")))
	}
	orders = append(orders, venta(t, "2025-03-01", 7, 1, conMedioPago("amex")))

	out := aggregate.MedioPagoBreakdown(orders)

	require.Len(t, out, 3, "los menores al 4% se pliegan en un único bucket")
	assert.Equal(t, "Otros", out[0].Medio, "el resultado queda ascendente por cantidad")
	assert.Equal(t, 3, out[0].Count, "Otros suma las órdenes plegadas")
	assert.True(t, out[0].Revenue.Equal(dec(17)), "Otros también acumula el revenue plegado")
	assert.Equal(t, "Mastercard", out[1].Medio)
	assert.Equal(t, 47, out[1].Count)
	assert.Equal(t, "Visa", out[2].Medio)
	assert.Equal(t, 50, out[2].Count)
}

// TestMedioPagoBreakdown_ConservaTotales la suma de los buckets siempre
// iguala el total de órdenes, con o sin plegado.
func TestMedioPagoBreakdown_ConservaTotales(t *testing.T) {
	var orders []entity.Order
	medios := []string{"visa", "master", "oca", "account_money", "abitab", "redpagos", "amex"}
	for i := 0; i < 60; i++ {
		orders = append(orders, venta(t, "2025-03-01", 10, 1, conMedioPago(medios[i%len(medios)])))
	}

	out := aggregate.MedioPagoBreakdown(orders)

	total := 0
	for _, b := range out {
		total += b.Count
	}
	assert.Equal(t, len(orders), total, "ningún bucket se pierde al plegar")
}

// TestMedioPagoBreakdown_EtiquetasMapeadas los códigos conocidos se
// traducen; los desconocidos pasan crudos como categoría propia.
func TestMedioPagoBreakdown_EtiquetasMapeadas(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conMedioPago("account_money")),
		venta(t, "2025-03-01", 10, 1, conMedioPago("pagofacil")),
	}

	out := aggregate.MedioPagoBreakdown(orders)

	medios := make([]string, 0, len(out))
	for _, b := range out {
		medios = append(medios, b.Medio)
	}
	assert.Contains(t, medios, "Cuenta ML")
	assert.Contains(t, medios, "pagofacil", "un código sin mapeo pasa sin cambios")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuotas
// ──────────────────────────────────────────────────────────────────────────────

// TestCuotasBreakdown_OrdenNumerico el orden es contado primero y
// después numérico ascendente: 10 cuotas va detrás de 3 aunque
// alfabéticamente iría antes que "2 cuotas".
func TestCuotasBreakdown_OrdenNumerico(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conCuotas(1)),
		venta(t, "2025-03-01", 10, 1, conCuotas(2)),
		venta(t, "2025-03-01", 10, 1, conCuotas(10)),
		venta(t, "2025-03-01", 10, 1, conCuotas(3)),
		venta(t, "2025-03-01", 10, 1, conCuotas(1)),
	}

	out := aggregate.CuotasBreakdown(orders)

	require.Len(t, out, 4)
	assert.Equal(t, "Contado", out[0].Cuotas)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, "2 cuotas", out[1].Cuotas)
	assert.Equal(t, "3 cuotas", out[2].Cuotas)
	assert.Equal(t, "10 cuotas", out[3].Cuotas, "orden numérico, no lexicográfico")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipo de envío
// ──────────────────────────────────────────────────────────────────────────────

// TestTipoEnvioBreakdown_DescendenteConColor.
func TestTipoEnvioBreakdown_DescendenteConColor(t *testing.T) {
	conTipoEnvio := func(tipo string) func(*entity.Order) {
		return func(o *entity.Order) { o.TipoEnvio = tipo }
	}
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conTipoEnvio("FLEX")),
		venta(t, "2025-03-01", 10, 1, conTipoEnvio("FULL")),
		venta(t, "2025-03-01", 10, 1, conTipoEnvio("FULL")),
		venta(t, "2025-03-01", 10, 1, conTipoEnvio("CATEGORIA RARA")),
	}

	out := aggregate.TipoEnvioBreakdown(orders)

	require.Len(t, out, 3)
	assert.Equal(t, "FULL", out[0].Tipo, "descendente por cantidad de órdenes")
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, "#FFE500", out[0].Color, "la paleta es parte del contrato")
	assert.Equal(t, "#555577", out[2].Color, "tipo desconocido usa el color default")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ranking de productos y performance por SKU
// ──────────────────────────────────────────────────────────────────────────────

func TestTopProducts_PorRevenueYPorUnidades(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 1000, 100, conProducto("Caro", "SKU-A")),
		venta(t, "2025-03-01", 100, 10, conProducto("Masivo", "SKU-B"), conCantidad(50)),
		venta(t, "2025-03-01", 100, 10, conProducto("Masivo", "SKU-B"), conCantidad(50)),
	}

	porRevenue := aggregate.TopProducts(orders, "revenue", 10)
	require.Len(t, porRevenue, 2)
	assert.Equal(t, "Caro", porRevenue[0].Name)
	assert.True(t, porRevenue[1].Revenue.Equal(dec(200)))

	porUnidades := aggregate.TopProducts(orders, "units", 10)
	assert.Equal(t, "Masivo", porUnidades[0].Name, "con metric=units gana el de más unidades")
	assert.Equal(t, 100, porUnidades[0].Units)
}

func TestTopProducts_TruncaATopN(t *testing.T) {
	var orders []entity.Order
	nombres := []string{"A", "B", "C", "D", "E"}
	for i, n := range nombres {
		orders = append(orders, venta(t, "2025-03-01", float64(100*(i+1)), 1, conProducto(n, "SKU-"+n)))
	}

	out := aggregate.TopProducts(orders, "revenue", 3)

	require.Len(t, out, 3)
	assert.Equal(t, "E", out[0].Name)
	assert.Equal(t, "C", out[2].Name)
}

func TestTopProducts_SinTitulo(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conProducto("", "SKU-X")),
	}

	out := aggregate.TopProducts(orders, "revenue", 10)

	require.Len(t, out, 1)
	assert.Equal(t, "Sin título", out[0].Name)
}

// TestSkuPerformance_MargenPorcentual la tabla por SKU calcula el margen
// porcentual redondeado a 2 decimales y ordena descendente por revenue.
func TestSkuPerformance_MargenPorcentual(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 400, 100, conProducto("Uno", "SKU-1"), conComision(40), conEnvio(30, 10)),
		venta(t, "2025-03-01", 600, 90, conProducto("Uno", "SKU-1"), conComision(60), conEnvio(20, 0)),
		venta(t, "2025-03-01", 100, 50, conProducto("Dos", "SKU-2")),
	}

	out := aggregate.SkuPerformance(orders)

	require.Len(t, out, 2)
	fila := out[0]
	assert.Equal(t, "SKU-1", fila.SKU, "descendente por revenue")
	assert.Equal(t, 2, fila.Units)
	assert.True(t, fila.Revenue.Equal(dec(1000)))
	assert.True(t, fila.Comision.Equal(dec(100)))
	assert.True(t, fila.Envio.Equal(dec(40)), "envío neto = costo - bonificación acumulados")
	assert.True(t, fila.Margen.Equal(dec(190)))
	assert.True(t, fila.MargenPct.Equal(dec(19)), "190/1000 = 19%")
}

// TestSkuPerformance_SkuVacioNoColapsa dos productos distintos sin SKU
// no deben caer en el mismo bucket.
func TestSkuPerformance_SkuVacioNoColapsa(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 100, 10, conProducto("Lámpara de escritorio", "")),
		venta(t, "2025-03-01", 200, 20, conProducto("Silla gamer", "")),
	}

	out := aggregate.SkuPerformance(orders)

	require.Len(t, out, 2, "cada producto sin SKU conserva bucket propio")
	assert.NotEqual(t, out[0].SKU, out[1].SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Geografía
// ──────────────────────────────────────────────────────────────────────────────

func TestDepartamentoBreakdown_Canoniza(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conEntrega("MONTEVIDEO", "")),
		venta(t, "2025-03-01", 10, 1, conEntrega("montevideo", "")),
		venta(t, "2025-03-01", 10, 1, conEntrega("PAYSANDU", "")),
		venta(t, "2025-03-01", 10, 1, conEntrega("", "")),
	}

	out := aggregate.DepartamentoBreakdown(orders)

	require.Len(t, out, 2, "las órdenes sin departamento se omiten")
	assert.Equal(t, "Montevideo", out[0].Region, "las variantes de mayúsculas colapsan en el canónico")
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, "Paysandú", out[1].Region, "la clave sin tilde matchea el canónico con tilde")
}

func TestZonasMontevideo_MatchYPassthrough(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-03-01", 10, 1, conEntrega("Montevideo", "POCITOS")),
		venta(t, "2025-03-01", 10, 1, conEntrega("Montevideo", "barrio pocitos")),
		venta(t, "2025-03-01", 10, 1, conEntrega("Montevideo", "Zona Desconocida")),
		venta(t, "2025-03-01", 10, 1, conEntrega("Canelones", "Pocitos")),
	}

	out := aggregate.ZonasMontevideo(orders)

	require.Len(t, out, 2, "solo entregas en Montevideo; lo no matcheado pasa crudo")
	assert.Equal(t, "Pocitos", out[0].Region)
	assert.Equal(t, 2, out[0].Count, "el match por substring agrupa la variante con prefijo")
	assert.Equal(t, "Zona Desconocida", out[1].Region)
}
