package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// Nombres y paleta de los cinco pasos del desglose financiero.
const (
	stepIngresos     = "Ingresos brutos"
	stepComisiones   = "Comisiones ML"
	stepCostoEnvio   = "Costo envíos"
	stepBonificacion = "Bonificación envíos"
	stepMargen       = "Margen real"
)

var waterfallColors = map[string]string{
	stepIngresos:     "#FFE500",
	stepComisiones:   "#FF4466",
	stepCostoEnvio:   "#FF6B35",
	stepBonificacion: "#44DDAA",
	stepMargen:       "#88AAFF",
}

// Waterfall arma el desglose financiero secuencial: ingresos brutos,
// menos comisiones, menos costo de envío, más bonificación, y el margen
// real como paso final de tipo total.
//
// El paso de margen restata el Margen Real Final sumado aparte y arranca
// de 0: NO se concilia contra la suma de los deltas anteriores, que puede
// diferir por redondeos y por costos no modelados en el gráfico. Esa
// diferencia se muestra tal cual, no se ajusta.
func Waterfall(orders []entity.Order) []dto.WaterfallStepDTO {
	var gross, fees, shipping, subsidy, margin decimal.Decimal
	for _, o := range orders {
		gross = gross.Add(o.TotalItem)
		fees = fees.Add(o.ComisionML)
		shipping = shipping.Add(o.ShippingCostSeller)
		subsidy = subsidy.Add(o.BonificacionEnvio)
		margin = margin.Add(o.MargenReal)
	}

	deltas := []struct {
		name  string
		value decimal.Decimal
	}{
		{stepIngresos, gross},
		{stepComisiones, fees.Neg()},
		{stepCostoEnvio, shipping.Neg()},
		{stepBonificacion, subsidy},
	}

	steps := make([]dto.WaterfallStepDTO, 0, len(deltas)+1)
	running := decimal.Zero
	for _, d := range deltas {
		base := running
		if d.value.IsNegative() {
			base = running.Add(d.value)
		}
		running = running.Add(d.value)
		steps = append(steps, dto.WaterfallStepDTO{
			Name:  d.name,
			Value: d.value,
			Base:  base,
			Bar:   d.value.Abs(),
			Total: running,
			Color: waterfallColors[d.name],
		})
	}

	steps = append(steps, dto.WaterfallStepDTO{
		Name:    stepMargen,
		Value:   margin,
		Base:    decimal.Zero,
		Bar:     margin.Abs(),
		Total:   margin,
		Color:   waterfallColors[stepMargen],
		IsTotal: true,
	})
	return steps
}
