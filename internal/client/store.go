// Package client é o SDK de acesso a dados do Paulo Cell: as APIs de entidade
// (clientes, aparelhos, serviços, estoque, notas, configurações), a lixeira,
// os relatórios e o sync — tudo sobre uma abstração de Store injetável, com a
// política remoto-primeiro e fallback para o cache local.
package client

import (
	"context"
	"encoding/json"
	"time"
)

// Record registro de uma store lógica, como trafega na API de user-data.
type Record struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store porta de acesso a dados por (store, key). As implementações:
// RemoteStore (API HTTP), CacheStore (Redis local) e OfflineFirstStore
// (composição remoto-primeiro). As APIs de entidade recebem a porta injetada,
// então a localização do dado é trocável sem tocar nos chamadores.
type Store interface {
	// Get devolve o registro ou (nil, nil) se ausente.
	Get(ctx context.Context, store, key string) (*Record, error)
	// Put insere ou sobrescreve o documento da chave e devolve o registro gravado.
	Put(ctx context.Context, store, key string, data json.RawMessage) (*Record, error)
	// Delete remove a chave; domain.ErrNotFound se não existia.
	Delete(ctx context.Context, store, key string) error
	// List devolve todos os registros da store.
	List(ctx context.Context, store string) ([]Record, error)
}
