package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/paulocell/paulocell-api/internal/events"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// Refresher recarrega o dashboard em intervalo fixo.
//
// Duas proteções contra o comportamento antigo de recarga concorrente:
//   - singleflight: ticks sobrepostos (remoto lento) colapsam numa única
//     execução em vez de empilhar requisições;
//   - contador de geração: uma resposta atrasada nunca sobrescreve o
//     snapshot de uma recarga mais nova.
type Refresher struct {
	reports  *ReportsAPI
	bus      *events.Bus
	log      *logger.Logger
	interval time.Duration

	group   singleflight.Group
	started uint64 // geração da recarga mais recente iniciada
	applied uint64 // geração da recarga mais recente aplicada

	mu     sync.RWMutex
	latest *DashboardData

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher constrói o refresher; interval <= 0 usa 30s.
func NewRefresher(reports *ReportsAPI, bus *events.Bus, log *logger.Logger, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{reports: reports, bus: bus, log: log, interval: interval}
}

// Start dispara o laço de recarga; a primeira execução é imediata.
func (r *Refresher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Refresh(ctx)
			}
		}
	}()
}

// Refresh executa um ciclo de recarga; chamadas sobrepostas colapsam.
func (r *Refresher) Refresh(ctx context.Context) {
	gen := atomic.AddUint64(&r.started, 1)

	v, err, _ := r.group.Do("dashboard", func() (any, error) {
		return r.reports.Dashboard(ctx)
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("recarga do dashboard falhou")
		return
	}

	r.mu.Lock()
	if gen <= atomic.LoadUint64(&r.applied) {
		// Resposta de uma geração antiga; já existe snapshot mais novo.
		r.mu.Unlock()
		return
	}
	atomic.StoreUint64(&r.applied, gen)
	r.latest = v.(*DashboardData)
	r.mu.Unlock()

	r.bus.Publish(events.Event{Type: events.DataUpdated})
}

// Latest devolve o último snapshot aplicado, ou nil antes da primeira recarga.
func (r *Refresher) Latest() *DashboardData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Stop cancela o laço e espera o encerramento.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
