// Package upstream implementa el cliente HTTP contra el Apps Script
// Webapp que publica las filas crudas de órdenes y stock.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mvdseller/ventas-api/internal/domain"
)

// maxBodyBytes tope de lectura del body; una planilla grande entra
// holgada y un upstream roto no nos infla la memoria.
const maxBodyBytes = 32 << 20

// RawBatch lote crudo tal como llega del Apps Script.
type RawBatch struct {
	Orders []map[string]any
	Stock  []map[string]any
}

// Client cliente del endpoint configurado. La URL puede estar vacía:
// en ese caso cada Fetch devuelve el error de configuración, no un panic.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient construye el cliente con el timeout de red dado.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope forma de respuesta con stock separado: {"orders": [...], "stock": [...]}.
type envelope struct {
	Orders []map[string]any `json:"orders"`
	Stock  []map[string]any `json:"stock"`
}

// Fetch trae el lote crudo. El endpoint puede responder un array JSON
// pelado de órdenes o el objeto {orders, stock}; se toleran ambas formas.
// Los errores de transporte, status y decodificación se envuelven en
// domain.ErrUpstream; acá no hay reintento (el timer de refresco es el
// reintento natural).
func (c *Client) Fetch(ctx context.Context) (*RawBatch, error) {
	if c.url == "" {
		return nil, domain.ErrNoUpstreamURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: crear request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d %s", domain.ErrUpstream, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return decodeBatch(body)
}

// decodeBatch acepta las dos formas de respuesta del Apps Script.
func decodeBatch(body []byte) (*RawBatch, error) {
	// Forma 1: array pelado de filas de órdenes.
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return &RawBatch{Orders: rows}, nil
	}

	// Forma 2: objeto {orders, stock}. Alcanza con que venga una de las
	// dos listas; un batch solo de stock es válido.
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && (env.Orders != nil || env.Stock != nil) {
		return &RawBatch{Orders: env.Orders, Stock: env.Stock}, nil
	}

	return nil, fmt.Errorf("%w: el endpoint no devolvió JSON con el formato esperado", domain.ErrUpstream)
}
