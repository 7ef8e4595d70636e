package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNoUpstreamURL indica que APPS_SCRIPT_URL no está configurada.
	// Es un error de configuración: se responde al cliente, no se reintenta.
	ErrNoUpstreamURL = errors.New("APPS_SCRIPT_URL no está configurada en las variables de entorno")

	// ErrUpstream envuelve fallas de transporte o respuestas no exitosas
	// del Apps Script. El timer de refresco provee el reintento natural.
	ErrUpstream = errors.New("error al consultar la fuente de datos")

	// ErrNoSnapshot indica que todavía no hay un agregado calculado
	// (primer arranque sin fetch exitoso).
	ErrNoSnapshot = errors.New("todavía no hay datos agregados disponibles")

	ErrInvalidInput = errors.New("entrada inválida")
)
