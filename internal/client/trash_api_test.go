package client_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocell/paulocell-api/internal/client"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

// ──────────────────────────────────────────────────────────────────────────────
// Lixeira: mover preserva o payload byte a byte e deriva nome/tipo; cada item
// recebe ID próprio e guarda a chave de origem em LiveID; restaurar devolve o
// registro à store de origem na chave original; chave reutilizada enquanto o
// item estava na lixeira vira conflito sem perder nada.
// ──────────────────────────────────────────────────────────────────────────────

const retencaoTeste = 60 * 24 * time.Hour

func novaLixeira(store client.Store) (*client.TrashAPI, *events.Bus) {
	bus := events.NewBus()
	return client.NewTrashAPI(store, bus, retencaoTeste), bus
}

func gravaCliente(t *testing.T, store client.Store, c entity.Customer) {
	t.Helper()
	data, err := json.Marshal(c)
	require.NoError(t, err)
	_, err = store.Put(context.Background(), domain.StoreCustomers, c.ID, data)
	require.NoError(t, err)
}

func TestMoveToTrash_MoveEDerivaNome(t *testing.T) {
	store := newMemStore()
	trash, bus := novaLixeira(store)
	eventos, cancel := bus.Subscribe(8, events.TrashChanged)
	defer cancel()

	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Ana Souza", Phone: "98999"})

	item, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID, "o item da lixeira recebe um ID próprio")
	assert.NotEqual(t, "c1", item.ID, "o ID do item não é a chave viva")
	assert.Equal(t, "c1", item.LiveID, "a chave de origem fica guardada para a restauração")
	assert.Equal(t, entity.TrashCustomer, item.Type)
	assert.Equal(t, "Ana Souza", item.Name, "o nome exibido vem do payload")
	assert.WithinDuration(t, time.Now(), item.DeletedAt, 5*time.Second)

	// o registro vivo sumiu
	vivo, err := store.Get(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)
	assert.Nil(t, vivo, "mover para a lixeira remove o registro vivo")

	// e a lixeira guarda o payload original intacto
	naLixeira, err := trash.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	var restaurado entity.Customer
	require.NoError(t, json.Unmarshal(naLixeira.Data, &restaurado))
	assert.Equal(t, "Ana Souza", restaurado.Name)

	select {
	case ev := <-eventos:
		assert.Equal(t, events.TrashChanged, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("evento TrashChanged esperado")
	}
}

func TestMoveToTrash_RegistroInexistente(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	_, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveToTrash_StoreDesconhecida(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	_, err := trash.MoveToTrash(context.Background(), "pedidos", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownStore,
		"settings e trash não têm exclusão lógica; store fora do mapa é erro")
}

func TestGetAll_OrdenaDoMaisRecente(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Primeiro", Phone: "1"})
	_, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	gravaCliente(t, store, entity.Customer{ID: "c2", Name: "Segundo", Phone: "2"})
	_, err = trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c2")
	require.NoError(t, err)

	items, err := trash.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c2", items[0].LiveID, "a exclusão mais recente vem primeiro")
	assert.Equal(t, "c1", items[1].LiveID)
}

// A mesma chave viva pode ser excluída mais de uma vez: cada exclusão cria um
// item novo na lixeira, sem sobrescrever o payload das exclusões anteriores.
func TestMoveToTrash_ChaveReutilizadaNaoSobrescreveExclusaoAnterior(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)
	ctx := context.Background()

	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Ana v1", Phone: "1"})
	primeiro, err := trash.MoveToTrash(ctx, domain.StoreCustomers, "c1")
	require.NoError(t, err)

	// a chave volta a existir (ex.: restauração do conjunto de demonstração)
	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Ana v2", Phone: "2"})
	segundo, err := trash.MoveToTrash(ctx, domain.StoreCustomers, "c1")
	require.NoError(t, err)

	assert.NotEqual(t, primeiro.ID, segundo.ID, "cada exclusão gera um item próprio")

	items, err := trash.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2, "as duas exclusões da mesma chave convivem na lixeira")

	nomes := make([]string, 0, 2)
	for _, item := range items {
		var c entity.Customer
		require.NoError(t, json.Unmarshal(item.Data, &c))
		nomes = append(nomes, c.Name)
	}
	assert.ElementsMatch(t, []string{"Ana v1", "Ana v2"}, nomes,
		"o payload da primeira exclusão permanece intacto")
}

func TestRestore_DevolveAStoreDeOrigem(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	original := entity.Customer{ID: "c1", Name: "Ana", Phone: "98999", Notes: "VIP"}
	gravaCliente(t, store, original)
	item, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)

	require.NoError(t, trash.Restore(context.Background(), item.ID))

	vivo, err := store.Get(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)
	require.NotNil(t, vivo, "o registro volta para a chave original da store de origem")
	var c entity.Customer
	require.NoError(t, json.Unmarshal(vivo.Data, &c))
	assert.Equal(t, original, c, "a restauração é byte a byte, sem perda de campo")

	_, err = trash.GetByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "o item sai da lixeira após restaurar")
}

func TestRestore_ChaveReutilizadaViraConflito(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Ana", Phone: "1"})
	item, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)

	// a mesma chave foi reutilizada enquanto o item estava na lixeira
	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Outra Ana", Phone: "2"})

	err = trash.Restore(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// nada se perde: o vivo continua e o item segue na lixeira
	vivo, _ := store.Get(context.Background(), domain.StoreCustomers, "c1")
	require.NotNil(t, vivo)
	var c entity.Customer
	require.NoError(t, json.Unmarshal(vivo.Data, &c))
	assert.Equal(t, "Outra Ana", c.Name, "o registro vivo não é sobrescrito")

	naLixeira, err := trash.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", naLixeira.Name, "o item permanece na lixeira intacto")
}

func TestDeletePermanently_SemVolta(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	gravaCliente(t, store, entity.Customer{ID: "c1", Name: "Ana", Phone: "1"})
	item, err := trash.MoveToTrash(context.Background(), domain.StoreCustomers, "c1")
	require.NoError(t, err)

	require.NoError(t, trash.DeletePermanently(context.Background(), item.ID))

	_, err = trash.GetByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	vivo, _ := store.Get(context.Background(), domain.StoreCustomers, "c1")
	assert.Nil(t, vivo, "a exclusão permanente não ressuscita o registro vivo")
}

func TestExpired_FiltraPelaJanelaDeRetencao(t *testing.T) {
	store := newMemStore()
	trash, _ := novaLixeira(store)

	// dois itens gravados direto na store da lixeira com datas controladas
	antigo := entity.TrashItem{
		ID: "velho", Name: "Velho", Type: entity.TrashCustomer,
		DeletedAt: time.Now().UTC().Add(-61 * 24 * time.Hour),
		Data:      json.RawMessage(`{}`),
	}
	recente := entity.TrashItem{
		ID: "novo", Name: "Novo", Type: entity.TrashCustomer,
		DeletedAt: time.Now().UTC().Add(-time.Hour),
		Data:      json.RawMessage(`{}`),
	}
	for _, item := range []entity.TrashItem{antigo, recente} {
		raw, err := json.Marshal(item)
		require.NoError(t, err)
		_, err = store.Put(context.Background(), domain.StoreTrash, item.ID, raw)
		require.NoError(t, err)
	}

	expirados, err := trash.Expired(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, expirados, 1, "só o item além dos 60 dias expira")
	assert.Equal(t, "velho", expirados[0].ID)
}
