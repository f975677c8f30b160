package client_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/paulocell/paulocell-api/internal/client"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// memStore implementação em memória de client.Store para os testes das APIs
// de entidade: mesmo contrato do remoto (Get ausente devolve nil, Delete
// ausente devolve ErrNotFound, List ordena por chave).
type memStore struct {
	mu   sync.Mutex
	data map[string]map[string]client.Record
}

var _ client.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{data: make(map[string]map[string]client.Record)}
}

func (m *memStore) Get(_ context.Context, store, key string) (*client.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.data[store][key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) Put(_ context.Context, store, key string, data json.RawMessage) (*client.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[store] == nil {
		m.data[store] = make(map[string]client.Record)
	}
	rec := client.Record{Key: key, Data: append(json.RawMessage(nil), data...), UpdatedAt: time.Now().UTC()}
	m.data[store][key] = rec
	return &rec, nil
}

func (m *memStore) Delete(_ context.Context, store, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[store][key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.data[store], key)
	return nil
}

func (m *memStore) List(_ context.Context, store string) ([]client.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]client.Record, 0, len(m.data[store]))
	for _, rec := range m.data[store] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

// testLogger logger silencioso para os testes.
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}
