package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// PeriodComparison resultado del comparador de períodos: mes en curso
// contra el mismo período parcial del mes anterior.
type PeriodComparison struct {
	Current      dto.PeriodSummaryDTO
	Previous     dto.PeriodSummaryDTO
	CurrentByDay []dto.AlignedDayPointDTO
	PrevByDay    []dto.AlignedDayPointDTO
	Trends       dto.TrendsDTO
}

// ComparePeriods arma la comparación mensual. La ventana previa se corta
// en el mismo día del mes que hoy: comparar un mes parcial contra el mes
// anterior completo mostraría siempre una caída engañosa.
//
// Las series por día son densas (día 1..hoy, con ceros en los días sin
// ventas) porque el gráfico superpone ambas sobre el mismo eje de días;
// un hueco las desalinearía.
func ComparePeriods(orders []entity.Order, now time.Time) PeriodComparison {
	curYear, curMonth := now.Year(), now.Month()
	prevAnchor := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevYear, prevMonth := prevAnchor.Year(), prevAnchor.Month()
	day := now.Day()

	var current, previous []entity.Order
	for _, o := range orders {
		if !o.FechaValida {
			continue
		}
		switch {
		case o.Fecha.Year() == curYear && o.Fecha.Month() == curMonth:
			current = append(current, o)
		case o.Fecha.Year() == prevYear && o.Fecha.Month() == prevMonth && o.Fecha.Day() <= day:
			previous = append(previous, o)
		}
	}

	cur := summarizeWindow(current)
	prev := summarizeWindow(previous)

	return PeriodComparison{
		Current:      cur,
		Previous:     prev,
		CurrentByDay: alignedSeries(current, day),
		PrevByDay:    alignedSeries(previous, day),
		Trends:       buildTrends(cur, prev),
	}
}

// summarizeWindow KPIs de una ventana de órdenes. Ratios en cero cuando
// el denominador es cero (nunca NaN ni división por cero).
func summarizeWindow(orders []entity.Order) dto.PeriodSummaryDTO {
	var revenue, margen, comisiones, envios decimal.Decimal
	units := 0
	for _, o := range orders {
		revenue = revenue.Add(o.TotalItem)
		margen = margen.Add(o.MargenReal)
		comisiones = comisiones.Add(o.ComisionML)
		envios = envios.Add(o.EnvioNeto())
		units += o.Cantidad
	}

	count := len(orders)
	margenPct := decimal.Zero
	if revenue.IsPositive() {
		margenPct = margen.Div(revenue).Mul(hundred).Round(2)
	}
	avgMargen := decimal.Zero
	avgOrderValue := decimal.Zero
	if count > 0 {
		n := decimal.NewFromInt(int64(count))
		avgMargen = margen.Div(n).Round(2)
		avgOrderValue = revenue.Div(n).Round(2)
	}

	return dto.PeriodSummaryDTO{
		Revenue:       revenue,
		Margen:        margen,
		Comisiones:    comisiones,
		Envios:        envios,
		Orders:        count,
		Units:         units,
		MargenPct:     margenPct,
		AvgMargen:     avgMargen,
		AvgOrderValue: avgOrderValue,
	}
}

// alignedSeries serie densa indexada por día del mes, 1..lastDay.
func alignedSeries(orders []entity.Order, lastDay int) []dto.AlignedDayPointDTO {
	series := make([]dto.AlignedDayPointDTO, lastDay)
	for i := range series {
		series[i] = dto.AlignedDayPointDTO{
			Day:     i + 1,
			Revenue: decimal.Zero,
			Margen:  decimal.Zero,
		}
	}
	for _, o := range orders {
		d := o.Fecha.Day()
		if d < 1 || d > lastDay {
			continue
		}
		p := &series[d-1]
		p.Revenue = p.Revenue.Add(o.TotalItem)
		p.Margen = p.Margen.Add(o.MargenReal)
		p.Orders++
	}
	return series
}

// PctChange variación porcentual (cur - prev) / prev * 100. El segundo
// retorno es false cuando prev es cero: "sin referencia" es distinto de
// "0% de cambio" y el consumidor no debe dibujar tendencia.
func PctChange(cur, prev decimal.Decimal) (decimal.Decimal, bool) {
	if prev.IsZero() {
		return decimal.Zero, false
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(2), true
}

func buildTrends(cur, prev dto.PeriodSummaryDTO) dto.TrendsDTO {
	return dto.TrendsDTO{
		Revenue:       trendPtr(cur.Revenue, prev.Revenue),
		Margen:        trendPtr(cur.Margen, prev.Margen),
		Comisiones:    trendPtr(cur.Comisiones, prev.Comisiones),
		Envios:        trendPtr(cur.Envios, prev.Envios),
		Orders:        trendPtr(decimal.NewFromInt(int64(cur.Orders)), decimal.NewFromInt(int64(prev.Orders))),
		Units:         trendPtr(decimal.NewFromInt(int64(cur.Units)), decimal.NewFromInt(int64(prev.Units))),
		MargenPct:     trendPtr(cur.MargenPct, prev.MargenPct),
		AvgMargen:     trendPtr(cur.AvgMargen, prev.AvgMargen),
		AvgOrderValue: trendPtr(cur.AvgOrderValue, prev.AvgOrderValue),
	}
}

func trendPtr(cur, prev decimal.Decimal) *decimal.Decimal {
	pct, ok := PctChange(cur, prev)
	if !ok {
		return nil
	}
	return &pct
}
