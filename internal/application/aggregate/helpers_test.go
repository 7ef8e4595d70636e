package aggregate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del paquete aggregate
// ──────────────────────────────────────────────────────────────────────────────

// venta construye una orden válida mínima: fecha YYYY-MM-DD, total y
// margen; el resto de campos se completa con los overrides.
func venta(t *testing.T, fecha string, total, margen float64, mods ...func(*entity.Order)) entity.Order {
	t.Helper()
	f, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		t.Fatalf("fecha de test inválida %q: %v", fecha, err)
	}
	o := entity.Order{
		OrderID:     "ORD-" + fecha,
		Fecha:       f,
		FechaValida: true,
		FechaRaw:    fecha,
		Producto:    "Producto test",
		SKU:         "SKU-TEST",
		Cantidad:    1,
		TotalItem:   decimal.NewFromFloat(total),
		MargenReal:  decimal.NewFromFloat(margen),
		TipoEnvio:   entity.TipoEnvioSinEnvio,
		MedioPago:   "visa",
		Cuotas:      1,
	}
	for _, mod := range mods {
		mod(&o)
	}
	return o
}

func conMedioPago(medio string) func(*entity.Order) {
	return func(o *entity.Order) { o.MedioPago = medio }
}

func conCuotas(n int) func(*entity.Order) {
	return func(o *entity.Order) { o.Cuotas = n }
}

func conProducto(nombre, sku string) func(*entity.Order) {
	return func(o *entity.Order) {
		o.Producto = nombre
		o.SKU = sku
	}
}

func conEnvio(costo, bonificacion float64) func(*entity.Order) {
	return func(o *entity.Order) {
		o.ShippingCostSeller = decimal.NewFromFloat(costo)
		o.BonificacionEnvio = decimal.NewFromFloat(bonificacion)
	}
}

func conComision(monto float64) func(*entity.Order) {
	return func(o *entity.Order) { o.ComisionML = decimal.NewFromFloat(monto) }
}

func conEntrega(departamento, ciudad string) func(*entity.Order) {
	return func(o *entity.Order) {
		o.DepartamentoEntrega = departamento
		o.CiudadEntrega = ciudad
	}
}

func conHora(hora string) func(*entity.Order) {
	return func(o *entity.Order) { o.Hora = hora }
}

func conCantidad(n int) func(*entity.Order) {
	return func(o *entity.Order) { o.Cantidad = n }
}

func sinFechaValida() func(*entity.Order) {
	return func(o *entity.Order) {
		o.FechaValida = false
		o.Fecha = time.Time{}
	}
}

// relojFijo devuelve un time.Time constante para inyectar en el Engine.
func relojFijo(fecha string) func() time.Time {
	f, _ := time.Parse("2006-01-02", fecha)
	return func() time.Time { return f }
}

// dec atajo para literales decimales en asserts.
func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
