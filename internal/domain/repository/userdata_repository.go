package repository

import (
	"context"
	"encoding/json"
	"time"
)

// UserDataRecord registro da fachada de persistência, com chave natural composta
// (UserID, Store, Key). Data é o documento JSON da entidade, sem schema imposto.
type UserDataRecord struct {
	ID        string
	UserID    string
	Store     string
	Key       string
	Data      json.RawMessage
	UpdatedAt time.Time
}

// UserDataRepository define a porta de persistência da fachada chave/valor por usuário.
// Sem transações entre chaves distintas; última escrita vence.
type UserDataRepository interface {
	// Get devolve o registro ou (nil, nil) se ausente.
	Get(ctx context.Context, userID, store, key string) (*UserDataRecord, error)
	// Upsert insere ou sobrescreve pela chave composta, carimbando UpdatedAt.
	Upsert(ctx context.Context, rec *UserDataRecord) error
	// Delete remove o registro; devolve false se não existia.
	Delete(ctx context.Context, userID, store, key string) (bool, error)
	// List devolve todos os registros da store, ordenados por chave.
	List(ctx context.Context, userID, store string) ([]*UserDataRecord, error)
	// DeleteExpiredTrash remove itens da lixeira com deletedAt anterior a before.
	DeleteExpiredTrash(ctx context.Context, before time.Time) (int64, error)
}
