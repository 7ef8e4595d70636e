// Package aggregate implementa el motor de agregación de órdenes: a
// partir de la lista canónica produce, en una pasada por vista, todas
// las series y desgloses que consume el dashboard. Todas las funciones
// son puras; la única dependencia de reloj se inyecta en el Engine.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// RevenueByDay agrupa por fecha calendario. La serie es dispersa: solo
// aparecen los días con al menos una orden, ordenados ascendente. Las
// filas con fecha inválida se excluyen en silencio.
func RevenueByDay(orders []entity.Order) []dto.DayPointDTO {
	type acc struct {
		revenue decimal.Decimal
		margen  decimal.Decimal
		orders  int
	}
	byDay := make(map[string]*acc)
	for _, o := range orders {
		if !o.FechaValida {
			continue
		}
		key := o.DayKey()
		a, ok := byDay[key]
		if !ok {
			a = &acc{}
			byDay[key] = a
		}
		a.revenue = a.revenue.Add(o.TotalItem)
		a.margen = a.margen.Add(o.MargenReal)
		a.orders++
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]dto.DayPointDTO, 0, len(keys))
	for _, k := range keys {
		a := byDay[k]
		series = append(series, dto.DayPointDTO{
			Date:    k,
			Revenue: a.revenue,
			Margen:  a.margen,
			Orders:  a.orders,
		})
	}
	return series
}

// RevenueByMonth agrupa por año-mes. La clave YYYY-MM lleva el mes con
// cero a la izquierda porque el orden es lexicográfico sobre el string.
func RevenueByMonth(orders []entity.Order) []dto.MonthPointDTO {
	type acc struct {
		revenue decimal.Decimal
		margen  decimal.Decimal
		orders  int
	}
	byMonth := make(map[string]*acc)
	for _, o := range orders {
		if !o.FechaValida {
			continue
		}
		key := o.MonthKey()
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.revenue = a.revenue.Add(o.TotalItem)
		a.margen = a.margen.Add(o.MargenReal)
		a.orders++
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]dto.MonthPointDTO, 0, len(keys))
	for _, k := range keys {
		a := byMonth[k]
		series = append(series, dto.MonthPointDTO{
			Month:   k,
			Revenue: a.revenue,
			Margen:  a.margen,
			Orders:  a.orders,
		})
	}
	return series
}

// AvailableMonths devuelve los meses presentes en el historial,
// ordenados del más reciente al más viejo (para el selector de filtros).
func AvailableMonths(orders []entity.Order) []string {
	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.FechaValida {
			seen[o.MonthKey()] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// FilterByMonth devuelve las órdenes cuyo mes calendario coincide con
// alguna de las claves YYYY-MM dadas. Lista vacía = sin filtro.
func FilterByMonth(orders []entity.Order, months []string) []entity.Order {
	if len(months) == 0 {
		return orders
	}
	want := make(map[string]struct{}, len(months))
	for _, m := range months {
		want[m] = struct{}{}
	}
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !o.FechaValida {
			continue
		}
		if _, ok := want[o.MonthKey()]; ok {
			out = append(out, o)
		}
	}
	return out
}

// FilterByYear devuelve las órdenes del año calendario dado.
func FilterByYear(orders []entity.Order, year int) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.FechaValida && o.Fecha.Year() == year {
			out = append(out, o)
		}
	}
	return out
}
