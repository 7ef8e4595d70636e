package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Los campos de entrega llegan como texto libre (mayúsculas, tildes y
// espacios inconsistentes). La normalización es: quitar diacríticos,
// bajar a minúsculas y colapsar espacios; después se busca en el
// diccionario canónico. Lo que no matchea pasa sin cambios, así el
// desglose puede mostrar variantes crudas como categorías propias.

// stripAccents elimina las marcas diacríticas vía descomposición NFD.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey devuelve la clave de comparación de un texto geográfico:
// sin tildes, minúsculas, espacios colapsados.
func NormalizeKey(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// departamentos canónicos de Uruguay, indexados por clave normalizada.
var departamentos = map[string]string{
	"montevideo":     "Montevideo",
	"canelones":      "Canelones",
	"maldonado":      "Maldonado",
	"rocha":          "Rocha",
	"treinta y tres": "Treinta y Tres",
	"cerro largo":    "Cerro Largo",
	"rivera":         "Rivera",
	"artigas":        "Artigas",
	"salto":          "Salto",
	"paysandu":       "Paysandú",
	"rio negro":      "Río Negro",
	"soriano":        "Soriano",
	"colonia":        "Colonia",
	"san jose":       "San José",
	"flores":         "Flores",
	"florida":        "Florida",
	"lavalleja":      "Lavalleja",
	"durazno":        "Durazno",
	"tacuarembo":     "Tacuarembó",
}

// CanonicalDepartamento mapea el texto libre del campo "Departamento
// Entrega" al nombre canónico. Entrada vacía devuelve vacío; entrada no
// reconocida pasa sin cambios.
func CanonicalDepartamento(raw string) string {
	if raw == "" {
		return ""
	}
	if canon, ok := departamentos[NormalizeKey(raw)]; ok {
		return canon
	}
	return raw
}

// MatchZone busca input dentro de un conjunto canónico de zonas
// (ej. barrios de Montevideo). Primero igualdad exacta sobre claves
// normalizadas; después contención de substring en ambas direcciones,
// para tolerar variantes como "barrio pocitos" vs "Pocitos". Devuelve
// false si ninguna estrategia matchea.
func MatchZone(input string, canonical []string) (string, bool) {
	key := NormalizeKey(input)
	if key == "" {
		return "", false
	}
	for _, c := range canonical {
		if NormalizeKey(c) == key {
			return c, true
		}
	}
	for _, c := range canonical {
		ck := NormalizeKey(c)
		if strings.Contains(key, ck) || strings.Contains(ck, key) {
			return c, true
		}
	}
	return "", false
}

// BarriosMontevideo conjunto canónico usado para el rollup por barrio.
// La lista replica los nombres del GeoJSON del mapa.
var BarriosMontevideo = []string{
	"Ciudad Vieja", "Centro", "Cordón", "Palermo", "Parque Rodó",
	"Punta Carretas", "Pocitos", "Buceo", "Malvín", "Punta Gorda",
	"Carrasco", "La Blanqueada", "Tres Cruces", "Aguada", "Prado",
	"Capurro", "Paso Molino", "Belvedere", "Sayago", "Colón",
	"Cerrito", "Unión", "Maroñas", "Cerro", "La Teja",
}
