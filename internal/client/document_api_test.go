package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocell/paulocell-api/internal/client"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

func novaAPINotas(store client.Store) (*client.DocumentAPI, *events.Bus) {
	bus := events.NewBus()
	trash := client.NewTrashAPI(store, bus, retencaoTeste)
	return client.NewDocumentAPI(store, trash, bus), bus
}

func TestDocumentCreate_DefaultsEEvento(t *testing.T) {
	api, bus := novaAPINotas(newMemStore())
	eventos, cancel := bus.Subscribe(4, events.DocumentCreated)
	defer cancel()

	criado, err := api.Create(context.Background(), entity.Document{
		Type: entity.DocumentNFSe, Number: "000101", Value: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPendente, criado.Status, "nota nasce pendente")
	assert.False(t, criado.Date.IsZero(), "sem data informada usa hoje")
	assert.NotEmpty(t, criado.ID)

	select {
	case ev := <-eventos:
		assert.Equal(t, criado.ID, ev.Key)
	case <-time.After(time.Second):
		t.Fatal("evento DocumentCreated esperado")
	}
}

func TestDocumentUpdateStatus_RespeitaOCiclo(t *testing.T) {
	api, _ := novaAPINotas(newMemStore())
	ctx := context.Background()
	criado, err := api.Create(ctx, entity.Document{Type: entity.DocumentNFe, Number: "1"})
	require.NoError(t, err)

	// pendente -> emitida -> paga
	doc, err := api.UpdateStatus(ctx, criado.ID, entity.StatusEmitida)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEmitida, doc.Status)

	doc, err = api.UpdateStatus(ctx, criado.ID, entity.StatusPaga)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaga, doc.Status)

	// paga é terminal
	_, err = api.UpdateStatus(ctx, criado.ID, entity.StatusCancelada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	lido, err := api.GetByID(ctx, criado.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaga, lido.Status, "a transição rejeitada não altera nada")
}

func TestDocumentUpdate_PuloDeStatusForaDoCicloEhRejeitado(t *testing.T) {
	api, _ := novaAPINotas(newMemStore())
	ctx := context.Background()
	criado, err := api.Create(ctx, entity.Document{Type: entity.DocumentNFe, Number: "1"})
	require.NoError(t, err)

	criado.Status = entity.StatusPaga // pendente -> paga sem emitir
	_, err = api.Update(ctx, *criado)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"o Update completo também passa pela validação de ciclo")
}

func TestDocumentRecordEmailSent_GuardaODestinatario(t *testing.T) {
	api, _ := novaAPINotas(newMemStore())
	ctx := context.Background()
	criado, err := api.Create(ctx, entity.Document{Type: entity.DocumentNFSe, Number: "2"})
	require.NoError(t, err)

	doc, err := api.RecordEmailSent(ctx, criado.ID, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", doc.EmailSentTo)

	_, err = api.RecordEmailSent(ctx, criado.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "destinatário vazio é rejeitado")
}

func TestDocumentGetByCustomer(t *testing.T) {
	api, _ := novaAPINotas(newMemStore())
	ctx := context.Background()
	_, err := api.Create(ctx, entity.Document{Type: entity.DocumentNFe, Number: "1", CustomerID: "c1"})
	require.NoError(t, err)
	_, err = api.Create(ctx, entity.Document{Type: entity.DocumentNFe, Number: "2", CustomerID: "c2"})
	require.NoError(t, err)

	docs, err := api.GetByCustomer(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "1", docs[0].Number)
}
