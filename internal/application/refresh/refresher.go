// Package refresh mantiene en memoria el último agregado calculado y lo
// renueva en un ciclo periódico más disparos manuales. No hay otra
// persistencia: la fuente de verdad es siempre el upstream.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvdseller/ventas-api/internal/application/aggregate"
	"github.com/mvdseller/ventas-api/internal/application/dto"
	"github.com/mvdseller/ventas-api/internal/application/ingest"
	"github.com/mvdseller/ventas-api/internal/domain/entity"
	"github.com/mvdseller/ventas-api/internal/infrastructure/upstream"
	"github.com/mvdseller/ventas-api/pkg/logger"
)

// Fetcher es el puerto hacia la fuente de datos cruda.
type Fetcher interface {
	Fetch(ctx context.Context) (*upstream.RawBatch, error)
}

// Snapshot es el resultado completo de un ciclo fetch→normalizar→agregar.
// Se conservan las listas canónicas además del agregado para que los
// endpoints con filtros (heatmap por mes, top productos, stock) puedan
// recalcular vistas sin volver al upstream.
type Snapshot struct {
	Dashboard  *dto.DashboardDTO
	Orders     []entity.Order
	Stock      []entity.StockItem
	Generation uint64
	FetchedAt  time.Time
}

// Refresher coordina los ciclos de refresco. Cada fetch lleva un número
// de generación monotónico: un fetch lento que termina después de que
// salió otro más nuevo se descarta, así una respuesta vieja nunca pisa
// una más fresca (last-write-wins por generación, no por orden de
// llegada).
type Refresher struct {
	fetcher Fetcher
	engine  *aggregate.Engine
	log     *logger.Logger

	mu       sync.Mutex
	latest   uint64 // última generación emitida
	snapshot *Snapshot
	lastErr  error
}

// New construye el refresher.
func New(fetcher Fetcher, engine *aggregate.Engine, log *logger.Logger) *Refresher {
	return &Refresher{
		fetcher: fetcher,
		engine:  engine,
		log:     log.WithComponent("refresher"),
	}
}

// Refresh corre un ciclo completo. En caso de error se conserva el
// último snapshot bueno y se registra el error para diagnóstico.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	r.latest++
	gen := r.latest
	r.mu.Unlock()

	fetchID := uuid.NewString()
	started := time.Now()

	batch, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()
		r.log.Error().Err(err).Str("fetch_id", fetchID).Uint64("gen", gen).Msg("refresco fallido")
		return nil, err
	}

	orders := ingest.Orders(batch.Orders)
	stock := ingest.Stock(batch.Stock)
	dashboard := r.engine.Build(orders, stock)

	snap := &Snapshot{
		Dashboard:  dashboard,
		Orders:     orders,
		Stock:      stock,
		Generation: gen,
		FetchedAt:  time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.latest {
		// Mientras este fetch estaba en vuelo salió uno más nuevo;
		// instalar este resultado pisaría datos más frescos.
		r.log.Warn().Str("fetch_id", fetchID).Uint64("gen", gen).Uint64("latest", r.latest).
			Msg("respuesta vieja descartada")
		if r.snapshot != nil {
			return r.snapshot, nil
		}
		return snap, nil
	}
	r.snapshot = snap
	r.lastErr = nil
	r.log.Info().
		Str("fetch_id", fetchID).
		Uint64("gen", gen).
		Int("orders", len(orders)).
		Int("stock_items", len(stock)).
		Dur("elapsed", time.Since(started)).
		Msg("agregado renovado")
	return snap, nil
}

// Snapshot devuelve el último agregado instalado, si existe.
func (r *Refresher) Snapshot() (*Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot, r.snapshot != nil
}

// LastError devuelve el error del último ciclo fallido (nil si el último
// ciclo fue exitoso).
func (r *Refresher) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Run ejecuta el ciclo periódico hasta que el contexto se cancele.
// Corre un primer refresco inmediato para no esperar un intervalo entero
// con el dashboard vacío.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) {
	_, _ = r.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.Refresh(ctx)
		}
	}
}
