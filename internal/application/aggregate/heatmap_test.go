package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
)

// TestHeatmap_GrillaDensa la grilla siempre tiene exactamente 7×24 = 168
// celdas en orden (día, hora), incluso con input vacío.
func TestHeatmap_GrillaDensa(t *testing.T) {
	cells := aggregate.Heatmap(nil)

	require.Len(t, cells, 168, "la grilla es densa aun sin órdenes")
	assert.Equal(t, 0, cells[0].Day)
	assert.Equal(t, 0, cells[0].Hour)
	assert.Equal(t, 6, cells[167].Day)
	assert.Equal(t, 23, cells[167].Hour)
	for _, c := range cells {
		assert.Zero(t, c.Count)
		assert.True(t, c.Revenue.IsZero())
	}
}

// TestHeatmap_Bucketing una venta cae en la celda de su día de semana y
// su hora. 2025-08-04 fue lunes (weekday 1).
func TestHeatmap_Bucketing(t *testing.T) {
	orders := []entity.Order{
		venta(t, "2025-08-04", 100, 10, conHora("14:30:00")),
		venta(t, "2025-08-04", 50, 5, conHora("14:05:00")),
		venta(t, "2025-08-04", 70, 7, sinFechaValida(), conHora("14:00:00")),
	}

	cells := aggregate.Heatmap(orders)

	require.Len(t, cells, 168)
	celda := cells[1*24+14] // lunes, 14hs
	assert.Equal(t, 2, celda.Count, "la fila sin fecha válida no bucketiza")
	assert.True(t, celda.Revenue.Equal(dec(150)))
}

// TestParseHour cubre las interpretaciones del campo Hora: timestamp
// completo primero, componente numérico inicial después, 0 como último
// recurso.
func TestParseHour(t *testing.T) {
	casos := []struct {
		hora string
		want int
	}{
		{"09:30:00", 9},
		{"23:59", 23},
		{"2025-08-04T19:05:00.000Z", 19},
		{"2025-08-04 19:05:00", 19},
		{"7", 7},
		{"7.30", 7},
		{"", 0},
		{"basura", 0},
		{"25:00", 0}, // fuera de rango
		{"-3:00", 0},
	}
	for _, c := range casos {
		t.Run(c.hora, func(t *testing.T) {
			assert.Equal(t, c.want, aggregate.ParseHour(c.hora), "hora %q", c.hora)
		})
	}
}
