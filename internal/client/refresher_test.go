package client_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocell/paulocell-api/internal/client"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

// slowStore instrumenta o memStore: conta as listagens e atrasa cada uma,
// para observar o colapso de recargas sobrepostas.
type slowStore struct {
	inner *memStore
	delay time.Duration
	lists int64
}

var _ client.Store = (*slowStore)(nil)

func (s *slowStore) Get(ctx context.Context, store, key string) (*client.Record, error) {
	return s.inner.Get(ctx, store, key)
}

func (s *slowStore) Put(ctx context.Context, store, key string, data json.RawMessage) (*client.Record, error) {
	return s.inner.Put(ctx, store, key, data)
}

func (s *slowStore) Delete(ctx context.Context, store, key string) error {
	return s.inner.Delete(ctx, store, key)
}

func (s *slowStore) List(ctx context.Context, store string) ([]client.Record, error) {
	atomic.AddInt64(&s.lists, 1)
	time.Sleep(s.delay)
	return s.inner.List(ctx, store)
}

func montaRefresher(t *testing.T, store client.Store, intervalo time.Duration) (*client.Refresher, *events.Bus) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := client.NewCacheStore(rdb)
	reports := client.NewReportsAPI(store, cache)
	bus := events.NewBus()
	return client.NewRefresher(reports, bus, testLogger(), intervalo), bus
}

func TestRefresher_RecargasSobrepostasColapsam(t *testing.T) {
	store := &slowStore{inner: newMemStore(), delay: 30 * time.Millisecond}
	refresher, _ := montaRefresher(t, store, time.Hour)

	// três recargas concorrentes enquanto a primeira ainda está no ar
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refresher.Refresh(context.Background())
		}()
	}
	wg.Wait()

	// um dashboard lista 5 stores; sem o colapso seriam 15 listagens
	assert.EqualValues(t, 5, atomic.LoadInt64(&store.lists),
		"recargas sobrepostas devem compartilhar uma única execução")
	assert.NotNil(t, refresher.Latest(), "o resultado compartilhado é aplicado")
}

func TestRefresher_RefreshAtualizaOSnapshot(t *testing.T) {
	store := newMemStore()
	refresher, bus := montaRefresher(t, store, time.Hour)
	eventos, cancel := bus.Subscribe(4, events.DataUpdated)
	defer cancel()
	ctx := context.Background()

	assert.Nil(t, refresher.Latest(), "antes da primeira recarga não há snapshot")

	refresher.Refresh(ctx)
	primeiro := refresher.Latest()
	require.NotNil(t, primeiro)
	assert.Zero(t, primeiro.TotalCustomers)

	select {
	case <-eventos:
	case <-time.After(time.Second):
		t.Fatal("recarga bem-sucedida deve publicar DataUpdated")
	}

	grava(t, store, domain.StoreCustomers, "c1", entity.Customer{ID: "c1", Name: "Ana", Phone: "1"})
	refresher.Refresh(ctx)

	segundo := refresher.Latest()
	require.NotNil(t, segundo)
	assert.Equal(t, 1, segundo.TotalCustomers, "a recarga seguinte enxerga o dado novo")
}

func TestRefresher_StartEStop(t *testing.T) {
	store := &slowStore{inner: newMemStore(), delay: time.Millisecond}
	refresher, _ := montaRefresher(t, store, 10*time.Millisecond)

	refresher.Start(context.Background())

	// espera o laço rodar pelo menos duas vezes (a imediata + um tick)
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&store.lists) >= 10
	}, 2*time.Second, 5*time.Millisecond, "o laço deve recarregar periodicamente")

	pronto := make(chan struct{})
	go func() {
		refresher.Stop()
		close(pronto)
	}()
	select {
	case <-pronto:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop deve encerrar o laço e retornar")
	}
}
