package client

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// OfflineFirstStore compõe remoto e cache com a política do sistema original:
//
//   - Leitura: tenta o remoto; sucesso sobrescreve o cache (o remoto é a fonte
//     da verdade); falha de rede serve o último snapshot em cache e liga o
//     indicador de offline.
//   - Escrita: tenta o remoto; falha aplica a mutação no cache e a enfileira
//     para replay pelo SyncAPI quando a conectividade voltar.
//
// Nenhuma garantia além de "o remoto vence quando alcançável": a reconciliação
// em lote usa last-write-wins por updatedAt.
type OfflineFirstStore struct {
	remote *RemoteStore
	cache  *CacheStore
	log    *logger.Logger
}

var _ Store = (*OfflineFirstStore)(nil)

// NewOfflineFirstStore constrói a composição remoto-primeiro.
func NewOfflineFirstStore(remote *RemoteStore, cache *CacheStore, log *logger.Logger) *OfflineFirstStore {
	return &OfflineFirstStore{remote: remote, cache: cache, log: log}
}

// offline indica erro de indisponibilidade (rede ou 5xx), não um 404/400 real.
func offline(err error) bool {
	return errors.Is(err, domain.ErrOffline)
}

// Get lê do remoto e atualiza o cache; se o remoto cair, serve o cache.
func (s *OfflineFirstStore) Get(ctx context.Context, store, key string) (*Record, error) {
	rec, err := s.remote.Get(ctx, store, key)
	if err == nil {
		_ = s.cache.ClearOffline(ctx)
		if rec != nil {
			if cacheErr := s.cache.SaveRecord(ctx, store, *rec); cacheErr != nil {
				s.log.Warn().Err(cacheErr).Str("store", store).Msg("falha ao atualizar cache")
			}
		}
		return rec, nil
	}
	if !offline(err) {
		return nil, err
	}
	s.markOffline(ctx, store, err)
	return s.cache.Get(ctx, store, key)
}

// List lê a coleção do remoto e substitui o snapshot local; offline serve o cache.
// Uma recarga viva bem-sucedida também desliga a flag de reset de estatísticas.
func (s *OfflineFirstStore) List(ctx context.Context, store string) ([]Record, error) {
	records, err := s.remote.List(ctx, store)
	if err == nil {
		_ = s.cache.ClearOffline(ctx)
		_ = s.cache.ClearResetFlag(ctx)
		if cacheErr := s.cache.ReplaceAll(ctx, store, records); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("store", store).Msg("falha ao atualizar cache")
		}
		return records, nil
	}
	if !offline(err) {
		return nil, err
	}
	s.markOffline(ctx, store, err)
	return s.cache.List(ctx, store)
}

// Put grava no remoto; offline grava no cache e enfileira a mutação para replay.
func (s *OfflineFirstStore) Put(ctx context.Context, store, key string, data json.RawMessage) (*Record, error) {
	rec, err := s.remote.Put(ctx, store, key, data)
	if err == nil {
		_ = s.cache.ClearOffline(ctx)
		if cacheErr := s.cache.SaveRecord(ctx, store, *rec); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("store", store).Msg("falha ao atualizar cache")
		}
		return rec, nil
	}
	if !offline(err) {
		return nil, err
	}
	s.markOffline(ctx, store, err)
	local, cacheErr := s.cache.Put(ctx, store, key, data)
	if cacheErr != nil {
		return nil, cacheErr
	}
	if qErr := s.cache.EnqueuePending(ctx, dto.SyncChange{
		Store:     store,
		Key:       key,
		Data:      data,
		UpdatedAt: local.UpdatedAt,
	}); qErr != nil {
		return nil, qErr
	}
	return local, nil
}

// Delete remove no remoto; offline remove do cache e enfileira a exclusão.
func (s *OfflineFirstStore) Delete(ctx context.Context, store, key string) error {
	err := s.remote.Delete(ctx, store, key)
	if err == nil {
		_ = s.cache.ClearOffline(ctx)
		if cacheErr := s.cache.Delete(ctx, store, key); cacheErr != nil && !errors.Is(cacheErr, domain.ErrNotFound) {
			s.log.Warn().Err(cacheErr).Str("store", store).Msg("falha ao atualizar cache")
		}
		return nil
	}
	if !offline(err) {
		return err
	}
	s.markOffline(ctx, store, err)
	if cacheErr := s.cache.Delete(ctx, store, key); cacheErr != nil {
		return cacheErr
	}
	return s.cache.EnqueuePending(ctx, dto.SyncChange{
		Store:     store,
		Key:       key,
		UpdatedAt: time.Now().UTC(),
		Deleted:   true,
	})
}

func (s *OfflineFirstStore) markOffline(ctx context.Context, store string, err error) {
	_ = s.cache.SetOffline(ctx)
	s.log.Warn().Err(err).Str("store", store).Msg("API remota indisponível, usando cache local")
}
