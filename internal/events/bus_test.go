package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocell/paulocell-api/internal/events"
)

func recebe(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("evento esperado não chegou")
		return events.Event{}
	}
}

func TestBus_EntregaParaAssinante(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(events.Event{Type: events.DataUpdated, Store: "customers", Key: "c1"})

	ev := recebe(t, ch)
	assert.Equal(t, events.DataUpdated, ev.Type)
	assert.Equal(t, "customers", ev.Store)
	assert.Equal(t, "c1", ev.Key)
	assert.False(t, ev.At.IsZero(), "Publish deve carimbar At quando vazio")
}

func TestBus_FiltraPorTipo(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4, events.TrashChanged)
	defer cancel()

	bus.Publish(events.Event{Type: events.DataUpdated})
	bus.Publish(events.Event{Type: events.TrashChanged, Key: "t1"})

	ev := recebe(t, ch)
	assert.Equal(t, events.TrashChanged, ev.Type,
		"assinante filtrado só deve receber os tipos declarados")
	assert.Equal(t, "t1", ev.Key)

	select {
	case extra := <-ch:
		t.Fatalf("evento inesperado: %+v", extra)
	default:
	}
}

func TestBus_PublishNaoBloqueiaComBufferCheio(t *testing.T) {
	bus := events.NewBus()
	_, cancel := bus.Subscribe(1)
	defer cancel()

	pronto := make(chan struct{})
	go func() {
		// assinante nunca lê; publicações além do buffer são descartadas
		for i := 0; i < 10; i++ {
			bus.Publish(events.Event{Type: events.DataUpdated})
		}
		close(pronto)
	}()

	select {
	case <-pronto:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueou com assinante lento")
	}
}

func TestBus_UnsubscribeIdempotente(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(1)

	cancel()
	require.NotPanics(t, cancel, "cancelar duas vezes não pode entrar em pânico")

	_, aberto := <-ch
	assert.False(t, aberto, "o canal deve ser fechado no cancelamento")

	// publicar depois do cancelamento não pode entrar em pânico
	require.NotPanics(t, func() {
		bus.Publish(events.Event{Type: events.DataUpdated})
	})
}
