package aggregate

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// Heatmap buckets las órdenes en la grilla densa día-de-semana × hora.
// Siempre devuelve exactamente 7×24 = 168 celdas (incluso con input
// vacío), en orden (día 0..6, hora 0..23). El filtrado por mes o año se
// hace aguas arriba con FilterByMonth/FilterByYear, no acá.
func Heatmap(orders []entity.Order) []dto.HeatmapCellDTO {
	counts := make([]int, 7*24)
	revenue := make([]decimal.Decimal, 7*24)

	for _, o := range orders {
		if !o.FechaValida {
			continue
		}
		day := int(o.Fecha.Weekday()) // 0 = domingo
		hour := ParseHour(o.Hora)
		idx := day*24 + hour
		counts[idx]++
		revenue[idx] = revenue[idx].Add(o.TotalItem)
	}

	cells := make([]dto.HeatmapCellDTO, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			idx := day*24 + hour
			cells = append(cells, dto.HeatmapCellDTO{
				Day:     day,
				Hour:    hour,
				Count:   counts[idx],
				Revenue: revenue[idx],
			})
		}
	}
	return cells
}

// horaLayouts interpretaciones de timestamp completo para el campo Hora.
// La planilla a veces emite la hora como timestamp ISO entero.
var horaLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// ParseHour extrae la hora (0..23) del campo Hora. Intenta primero la
// interpretación de timestamp completo y cae a extraer el componente
// numérico inicial de "HH:MM:SS"; si nada funciona, hora 0.
func ParseHour(hora string) int {
	hora = strings.TrimSpace(hora)
	if hora == "" {
		return 0
	}
	for _, layout := range horaLayouts {
		if t, err := time.Parse(layout, hora); err == nil {
			return t.Hour()
		}
	}
	head := hora
	if i := strings.IndexAny(head, ":."); i >= 0 {
		head = head[:i]
	}
	if h, err := strconv.Atoi(strings.TrimSpace(head)); err == nil && h >= 0 && h <= 23 {
		return h
	}
	return 0
}
