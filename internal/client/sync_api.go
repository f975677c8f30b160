package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/events"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// SyncAPI replay das escritas feitas offline e controles de estatísticas.
type SyncAPI struct {
	remote *RemoteStore
	cache  *CacheStore
	store  Store
	bus    *events.Bus
	log    *logger.Logger
}

// NewSyncAPI constrói a API.
func NewSyncAPI(remote *RemoteStore, cache *CacheStore, store Store, bus *events.Bus, log *logger.Logger) *SyncAPI {
	return &SyncAPI{remote: remote, cache: cache, store: store, bus: bus, log: log}
}

// Sync drena a fila de pendências e envia tudo num único lote.
// Conflitos voltam com a cópia do servidor, que é aplicada ao cache (o servidor
// vence). Se o envio falhar, as mutações voltam para a fila na ordem original.
func (a *SyncAPI) Sync(ctx context.Context) (*dto.SyncResponse, error) {
	changes, err := a.cache.DrainPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return &dto.SyncResponse{Success: true}, nil
	}

	resp, err := a.remote.Sync(ctx, changes)
	if err != nil {
		if reqErr := a.cache.RequeuePending(ctx, changes); reqErr != nil {
			a.log.Error().Err(reqErr).Msg("falha ao devolver pendências à fila")
		}
		return nil, fmt.Errorf("replay de pendências: %w", err)
	}

	_ = a.cache.ClearOffline(ctx)

	// O servidor venceu nesses registros: sobrescrever o cache com a cópia dele.
	for _, conflict := range resp.Conflicts {
		if conflict.Deleted {
			if err := a.cache.Delete(ctx, conflict.Store, conflict.Key); err != nil && !errors.Is(err, domain.ErrNotFound) {
				a.log.Warn().Err(err).Str("store", conflict.Store).Str("key", conflict.Key).
					Msg("falha ao aplicar exclusão do servidor")
			}
			continue
		}
		rec := Record{Key: conflict.Key, Data: conflict.Data, UpdatedAt: conflict.UpdatedAt}
		if err := a.cache.SaveRecord(ctx, conflict.Store, rec); err != nil {
			a.log.Warn().Err(err).Str("store", conflict.Store).Str("key", conflict.Key).
				Msg("falha ao aplicar cópia do servidor")
		}
	}

	a.log.Info().Int("aplicadas", resp.Applied).Int("conflitos", len(resp.Conflicts)).
		Msg("pendências sincronizadas")
	a.bus.Publish(events.Event{Type: events.DataUpdated})
	return resp, nil
}

// Pending devolve quantas mutações aguardam replay.
func (a *SyncAPI) Pending(ctx context.Context) (int64, error) {
	return a.cache.PendingCount(ctx)
}

// Offline informa se a última chamada remota falhou.
func (a *SyncAPI) Offline(ctx context.Context) (bool, error) {
	return a.cache.Offline(ctx)
}

// ResetVisualStatistics zera os relatórios sem tocar nos dados: liga a flag de
// reset e descarta o dashboard em cache. A flag desliga sozinha na próxima
// recarga viva bem-sucedida.
func (a *SyncAPI) ResetVisualStatistics(ctx context.Context) error {
	if err := a.cache.SetResetFlag(ctx); err != nil {
		return err
	}
	if err := a.cache.DeleteReportCache(ctx); err != nil {
		return err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated})
	return nil
}

// ResetAllStatistics faz o reset visual e ainda esvazia os snapshots locais
// das entidades. Os dados remotos permanecem intactos.
func (a *SyncAPI) ResetAllStatistics(ctx context.Context) error {
	if err := a.ResetVisualStatistics(ctx); err != nil {
		return err
	}
	for _, store := range domain.EntityStores {
		if err := a.cache.ClearStore(ctx, store); err != nil {
			return fmt.Errorf("limpar cache de %s: %w", store, err)
		}
	}
	return nil
}

// RestoreDemoData grava o conjunto de demonstração e desliga a flag de reset.
func (a *SyncAPI) RestoreDemoData(ctx context.Context) error {
	if err := seedDemoData(ctx, a.store); err != nil {
		return err
	}
	if err := a.cache.ClearResetFlag(ctx); err != nil {
		return err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated})
	return nil
}
