package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulocell/paulocell-api/internal/application/dto"
)

// fakeRemote servidor HTTP de teste que implementa o contrato /api/user-data,
// com um interruptor para simular indisponibilidade (tudo vira 500).
type fakeRemote struct {
	mu   sync.Mutex
	rows map[string]map[string]dto.UserDataEntry // store -> key -> entrada
	down atomic.Bool
	srv  *httptest.Server
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	f := &fakeRemote{rows: make(map[string]map[string]dto.UserDataEntry)}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRemote) url() string { return f.srv.URL }

func (f *fakeRemote) set(store, key string, data json.RawMessage, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[store] == nil {
		f.rows[store] = make(map[string]dto.UserDataEntry)
	}
	f.rows[store][key] = dto.UserDataEntry{Key: key, Data: data, UpdatedAt: updatedAt}
}

func (f *fakeRemote) get(store, key string) (dto.UserDataEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[store][key]
	return e, ok
}

func (f *fakeRemote) handle(w http.ResponseWriter, r *http.Request) {
	if f.down.Load() {
		http.Error(w, "indisponível", http.StatusInternalServerError)
		return
	}
	// caminho: /api/user-data/{userId}/... (identidade ignorada pelo fake)
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/user-data/"), "/")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case len(parts) == 2 && parts[1] == "sync" && r.Method == http.MethodPost:
		f.handleSync(w, r)
	case len(parts) == 3:
		f.handleKey(w, r, parts[1], parts[2])
	case len(parts) == 2:
		f.handleList(w, parts[1])
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "rota desconhecida"})
	}
}

func (f *fakeRemote) handleKey(w http.ResponseWriter, r *http.Request, store, key string) {
	switch r.Method {
	case http.MethodGet:
		entry, ok := f.get(store, key)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "registro não encontrado"})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.UserDataResponse{Success: true, Data: entry.Data})
	case http.MethodPut, http.MethodPost:
		var in dto.UpsertUserDataRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		now := time.Now().UTC()
		f.set(store, key, in.Data, now)
		_ = json.NewEncoder(w).Encode(dto.UpsertUserDataResponse{Success: true, ID: key, UpdatedAt: now})
	case http.MethodDelete:
		f.mu.Lock()
		_, ok := f.rows[store][key]
		delete(f.rows[store], key)
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "registro não encontrado"})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.DeleteUserDataResponse{Success: true})
	}
}

func (f *fakeRemote) handleList(w http.ResponseWriter, store string) {
	f.mu.Lock()
	entries := make([]dto.UserDataEntry, 0, len(f.rows[store]))
	for _, e := range f.rows[store] {
		entries = append(entries, e)
	}
	f.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	_ = json.NewEncoder(w).Encode(dto.ListUserDataResponse{Success: true, Data: entries, Count: len(entries)})
}

// handleSync aplica last-write-wins igual ao servidor real.
func (f *fakeRemote) handleSync(w http.ResponseWriter, r *http.Request) {
	var in dto.SyncRequest
	_ = json.NewDecoder(r.Body).Decode(&in)

	resp := dto.SyncResponse{Success: true}
	for _, ch := range in.Changes {
		existing, ok := f.get(ch.Store, ch.Key)
		if ok && !ch.UpdatedAt.After(existing.UpdatedAt) {
			resp.Conflicts = append(resp.Conflicts, dto.SyncChange{
				Store: ch.Store, Key: ch.Key, Data: existing.Data, UpdatedAt: existing.UpdatedAt,
			})
			continue
		}
		if ch.Deleted {
			f.mu.Lock()
			delete(f.rows[ch.Store], ch.Key)
			f.mu.Unlock()
		} else {
			f.set(ch.Store, ch.Key, ch.Data, ch.UpdatedAt)
		}
		resp.Applied++
	}
	_ = json.NewEncoder(w).Encode(resp)
}
