package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Prefixo de todas as chaves locais, herdado do armazenamento original do navegador.
const cachePrefix = "pauloCell_"

// Chaves auxiliares fora das stores de entidades.
const (
	resetFlagKey    = cachePrefix + "data_reset_flag"
	offlineFlagKey  = cachePrefix + "offline"
	pendingSyncKey  = cachePrefix + "pending_sync"
	reportDashboard = cachePrefix + "report_dashboard"
)

// cachedRecord formato serializado de um registro no cache.
type cachedRecord struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CacheStore implementa Store sobre Redis: o análogo do localStorage original,
// um hash `pauloCell_{store}` por coleção. Também guarda as flags de controle
// (reset de estatísticas, offline) e a fila de escritas pendentes.
type CacheStore struct {
	rdb *redis.Client
}

var _ Store = (*CacheStore)(nil)

// NewCacheStore constrói o cache sobre o cliente Redis.
func NewCacheStore(rdb *redis.Client) *CacheStore {
	return &CacheStore{rdb: rdb}
}

func storeKey(store string) string {
	return cachePrefix + store
}

// Get devolve o registro em cache ou (nil, nil) se ausente.
func (c *CacheStore) Get(ctx context.Context, store, key string) (*Record, error) {
	raw, err := c.rdb.HGet(ctx, storeKey(store), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var rec cachedRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &Record{Key: key, Data: rec.Data, UpdatedAt: rec.UpdatedAt}, nil
}

// Put grava o documento carimbando agora como updatedAt.
func (c *CacheStore) Put(ctx context.Context, store, key string, data json.RawMessage) (*Record, error) {
	rec := Record{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := c.SaveRecord(ctx, store, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveRecord grava um registro preservando o updatedAt recebido (ex. carimbo do servidor).
func (c *CacheStore) SaveRecord(ctx context.Context, store string, rec Record) error {
	raw, err := json.Marshal(cachedRecord{Data: rec.Data, UpdatedAt: rec.UpdatedAt})
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.HSet(ctx, storeKey(store), rec.Key, raw).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete remove a chave; domain.ErrNotFound se não existia.
func (c *CacheStore) Delete(ctx context.Context, store, key string) error {
	removed, err := c.rdb.HDel(ctx, storeKey(store), key).Result()
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devolve todos os registros da store, ordenados por chave.
func (c *CacheStore) List(ctx context.Context, store string) ([]Record, error) {
	entries, err := c.rdb.HGetAll(ctx, storeKey(store)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	records := make([]Record, 0, len(entries))
	for key, raw := range entries {
		var rec cachedRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("cache decode %q: %w", key, err)
		}
		records = append(records, Record{Key: key, Data: rec.Data, UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

// ReplaceAll substitui o conteúdo inteiro da store pelo snapshot remoto
// (cache-aside: o remoto é a fonte da verdade).
func (c *CacheStore) ReplaceAll(ctx context.Context, store string, records []Record) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, storeKey(store))
	for _, rec := range records {
		raw, err := json.Marshal(cachedRecord{Data: rec.Data, UpdatedAt: rec.UpdatedAt})
		if err != nil {
			return fmt.Errorf("cache encode: %w", err)
		}
		pipe.HSet(ctx, storeKey(store), rec.Key, raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache replace: %w", err)
	}
	return nil
}

// ClearStore esvazia uma store do cache.
func (c *CacheStore) ClearStore(ctx context.Context, store string) error {
	return c.rdb.Del(ctx, storeKey(store)).Err()
}

// ── Flag de reset de estatísticas ─────────────────────────────────────────────

// SetResetFlag liga a flag que zera os dados visuais dos relatórios.
func (c *CacheStore) SetResetFlag(ctx context.Context) error {
	return c.rdb.Set(ctx, resetFlagKey, "1", 0).Err()
}

// ClearResetFlag desliga a flag (recarga de dados vivos bem-sucedida ou restauração).
func (c *CacheStore) ClearResetFlag(ctx context.Context) error {
	return c.rdb.Del(ctx, resetFlagKey).Err()
}

// ResetFlagSet informa se a flag está ligada.
func (c *CacheStore) ResetFlagSet(ctx context.Context) (bool, error) {
	n, err := c.rdb.Exists(ctx, resetFlagKey).Result()
	if err != nil {
		return false, fmt.Errorf("cache reset flag: %w", err)
	}
	return n > 0, nil
}

// ── Indicador de offline ──────────────────────────────────────────────────────

// SetOffline marca que a última chamada remota falhou.
func (c *CacheStore) SetOffline(ctx context.Context) error {
	return c.rdb.Set(ctx, offlineFlagKey, "1", 0).Err()
}

// ClearOffline limpa o indicador após uma chamada remota bem-sucedida.
func (c *CacheStore) ClearOffline(ctx context.Context) error {
	return c.rdb.Del(ctx, offlineFlagKey).Err()
}

// Offline informa se o indicador está ligado.
func (c *CacheStore) Offline(ctx context.Context) (bool, error) {
	n, err := c.rdb.Exists(ctx, offlineFlagKey).Result()
	if err != nil {
		return false, fmt.Errorf("cache offline flag: %w", err)
	}
	return n > 0, nil
}

// ── Fila de escritas pendentes (feitas offline) ───────────────────────────────

// EnqueuePending acrescenta uma mutação à fila de replay.
func (c *CacheStore) EnqueuePending(ctx context.Context, ch dto.SyncChange) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode pendente: %w", err)
	}
	return c.rdb.RPush(ctx, pendingSyncKey, raw).Err()
}

// PendingCount devolve quantas mutações aguardam replay.
func (c *CacheStore) PendingCount(ctx context.Context) (int64, error) {
	return c.rdb.LLen(ctx, pendingSyncKey).Result()
}

// DrainPending remove e devolve toda a fila, na ordem de enfileiramento.
func (c *CacheStore) DrainPending(ctx context.Context) ([]dto.SyncChange, error) {
	raws, err := c.rdb.LRange(ctx, pendingSyncKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("drenar pendentes: %w", err)
	}
	if err := c.rdb.Del(ctx, pendingSyncKey).Err(); err != nil {
		return nil, fmt.Errorf("limpar pendentes: %w", err)
	}
	changes := make([]dto.SyncChange, 0, len(raws))
	for _, raw := range raws {
		var ch dto.SyncChange
		if err := json.Unmarshal([]byte(raw), &ch); err != nil {
			return nil, fmt.Errorf("decode pendente: %w", err)
		}
		changes = append(changes, ch)
	}
	return changes, nil
}

// RequeuePending devolve mutações à frente da fila (replay falhou, tentar de novo depois).
func (c *CacheStore) RequeuePending(ctx context.Context, changes []dto.SyncChange) error {
	// LPush inverte; empurrar de trás para frente preserva a ordem original.
	for i := len(changes) - 1; i >= 0; i-- {
		raw, err := json.Marshal(changes[i])
		if err != nil {
			return fmt.Errorf("encode pendente: %w", err)
		}
		if err := c.rdb.LPush(ctx, pendingSyncKey, raw).Err(); err != nil {
			return err
		}
	}
	return nil
}

// ── Cache de relatórios ───────────────────────────────────────────────────────

// DeleteReportCache descarta o snapshot de dashboard em cache.
func (c *CacheStore) DeleteReportCache(ctx context.Context) error {
	return c.rdb.Del(ctx, reportDashboard).Err()
}

// SaveReportCache guarda o último dashboard calculado.
func (c *CacheStore) SaveReportCache(ctx context.Context, data []byte) error {
	return c.rdb.Set(ctx, reportDashboard, data, 0).Err()
}

// ReportCache devolve o último dashboard em cache, ou nil se ausente.
func (c *CacheStore) ReportCache(ctx context.Context) ([]byte, error) {
	raw, err := c.rdb.Get(ctx, reportDashboard).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache relatório: %w", err)
	}
	return raw, nil
}
