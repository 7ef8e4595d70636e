package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvdseller/ventas-api/internal/application/ingest"
)

// TestNormalizeKey la clave de comparación baja a minúsculas, quita
// tildes y colapsa espacios.
func TestNormalizeKey(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"PAYSANDÚ", "paysandu"},
		{"  Río   Negro ", "rio negro"},
		{"Treinta y Tres", "treinta y tres"},
		{"San José", "san jose"},
		{"", ""},
	}
	for _, c := range casos {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, ingest.NormalizeKey(c.in))
		})
	}
}

// TestCanonicalDepartamento variantes de mayúsculas y tildes colapsan en
// el nombre canónico; lo no reconocido pasa sin cambios.
func TestCanonicalDepartamento(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"MONTEVIDEO", "Montevideo"},
		{"montevideo", "Montevideo"},
		{"paysandu", "Paysandú"},
		{"PAYSANDÚ", "Paysandú"},
		{"tacuarembo", "Tacuarembó"},
		{"rio negro", "Río Negro"},
		{"Buenos Aires", "Buenos Aires"}, // no es departamento: passthrough
		{"", ""},
	}
	for _, c := range casos {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, ingest.CanonicalDepartamento(c.in))
		})
	}
}

// TestMatchZone igualdad normalizada primero, contención de substring en
// ambas direcciones después.
func TestMatchZone(t *testing.T) {
	t.Run("match exacto normalizado", func(t *testing.T) {
		canon, ok := ingest.MatchZone("MALVÍN", ingest.BarriosMontevideo)
		assert.True(t, ok)
		assert.Equal(t, "Malvín", canon)
	})

	t.Run("el input contiene la zona", func(t *testing.T) {
		canon, ok := ingest.MatchZone("barrio pocitos", ingest.BarriosMontevideo)
		assert.True(t, ok)
		assert.Equal(t, "Pocitos", canon)
	})

	t.Run("la zona contiene al input", func(t *testing.T) {
		canon, ok := ingest.MatchZone("punta carretas", []string{"Punta Carretas Norte"})
		assert.True(t, ok)
		assert.Equal(t, "Punta Carretas Norte", canon)
	})

	t.Run("sin match", func(t *testing.T) {
		_, ok := ingest.MatchZone("Ciudad de la Costa", ingest.BarriosMontevideo)
		assert.False(t, ok)
	})

	t.Run("input vacío", func(t *testing.T) {
		_, ok := ingest.MatchZone("   ", ingest.BarriosMontevideo)
		assert.False(t, ok)
	})
}
