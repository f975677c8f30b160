package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

// TrashAPI lixeira: exclusão lógica com retenção e restauração.
// Cada item recebe um ID próprio e guarda em LiveID a chave de origem,
// então restaurar devolve o registro exatamente onde estava e a mesma
// chave viva pode ser excluída mais de uma vez sem sobrescrever nada.
type TrashAPI struct {
	store     Store
	bus       *events.Bus
	retention time.Duration
}

// NewTrashAPI constrói a API; retention define a janela antes da varredura.
func NewTrashAPI(store Store, bus *events.Bus, retention time.Duration) *TrashAPI {
	return &TrashAPI{store: store, bus: bus, retention: retention}
}

// Retention janela de retenção configurada.
func (a *TrashAPI) Retention() time.Duration { return a.retention }

// kindForStore mapeia a store viva para o discriminador da lixeira.
func kindForStore(store string) (entity.TrashKind, error) {
	switch store {
	case domain.StoreCustomers:
		return entity.TrashCustomer, nil
	case domain.StoreDevices:
		return entity.TrashDevice, nil
	case domain.StoreServices:
		return entity.TrashService, nil
	case domain.StoreDocuments:
		return entity.TrashDocument, nil
	case domain.StoreInventory:
		return entity.TrashInventory, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownStore, store)
}

// storeForKind mapeia o discriminador de volta para a store viva.
func storeForKind(kind entity.TrashKind) (string, error) {
	switch kind {
	case entity.TrashCustomer:
		return domain.StoreCustomers, nil
	case entity.TrashDevice:
		return domain.StoreDevices, nil
	case entity.TrashService:
		return domain.StoreServices, nil
	case entity.TrashDocument:
		return domain.StoreDocuments, nil
	case entity.TrashInventory:
		return domain.StoreInventory, nil
	}
	return "", fmt.Errorf("%w: tipo de lixeira %q", domain.ErrUnknownStore, kind)
}

// displayName deriva o nome exibido na lixeira a partir do payload original.
func displayName(kind entity.TrashKind, data json.RawMessage) string {
	switch kind {
	case entity.TrashCustomer:
		var c entity.Customer
		if json.Unmarshal(data, &c) == nil {
			return c.DisplayName()
		}
	case entity.TrashDevice:
		var d entity.Device
		if json.Unmarshal(data, &d) == nil {
			return d.DisplayName()
		}
	case entity.TrashService:
		var s entity.Service
		if json.Unmarshal(data, &s) == nil {
			return s.DisplayName()
		}
	case entity.TrashDocument:
		var d entity.Document
		if json.Unmarshal(data, &d) == nil {
			return d.DisplayName()
		}
	case entity.TrashInventory:
		var it entity.InventoryItem
		if json.Unmarshal(data, &it) == nil {
			return it.Name
		}
	}
	return "(sem nome)"
}

// MoveToTrash move um registro vivo para a lixeira.
// A entrada da lixeira é gravada ANTES de apagar o registro vivo: uma falha
// no meio deixa uma duplicata inofensiva, nunca perda de dados.
func (a *TrashAPI) MoveToTrash(ctx context.Context, store, id string) (*entity.TrashItem, error) {
	kind, err := kindForStore(store)
	if err != nil {
		return nil, err
	}
	rec, err := a.store.Get(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	item := entity.TrashItem{
		ID:        uuid.New().String(),
		LiveID:    id,
		Name:      displayName(kind, rec.Data),
		Type:      kind,
		DeletedAt: time.Now().UTC(),
		Data:      rec.Data,
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("serializar item da lixeira: %w", err)
	}
	if _, err := a.store.Put(ctx, domain.StoreTrash, item.ID, payload); err != nil {
		return nil, err
	}
	if err := a.store.Delete(ctx, store, id); err != nil {
		return nil, err
	}

	a.bus.Publish(events.Event{Type: events.TrashChanged, Store: domain.StoreTrash, Key: item.ID})
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: store, Key: id})
	return &item, nil
}

// GetAll devolve a lixeira ordenada da exclusão mais recente para a mais antiga.
func (a *TrashAPI) GetAll(ctx context.Context) ([]entity.TrashItem, error) {
	records, err := a.store.List(ctx, domain.StoreTrash)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[entity.TrashItem](records)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items, nil
}

// GetByID devolve um item da lixeira; domain.ErrNotFound se ausente.
func (a *TrashAPI) GetByID(ctx context.Context, id string) (*entity.TrashItem, error) {
	rec, err := a.store.Get(ctx, domain.StoreTrash, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.TrashItem](rec)
}

// Restore devolve o item para a store de origem com o payload intacto.
// Se a chave original foi reutilizada enquanto o item estava na lixeira,
// devolve domain.ErrConflict e deixa a lixeira como está.
func (a *TrashAPI) Restore(ctx context.Context, id string) error {
	item, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}
	store, err := storeForKind(item.Type)
	if err != nil {
		return err
	}

	live, err := a.store.Get(ctx, store, item.LiveID)
	if err != nil {
		return err
	}
	if live != nil {
		return fmt.Errorf("%w: já existe um registro %s com id %s", domain.ErrConflict, store, item.LiveID)
	}

	if _, err := a.store.Put(ctx, store, item.LiveID, item.Data); err != nil {
		return err
	}
	if err := a.store.Delete(ctx, domain.StoreTrash, id); err != nil {
		return err
	}

	a.bus.Publish(events.Event{Type: events.TrashChanged, Store: domain.StoreTrash, Key: id})
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: store, Key: item.LiveID})
	return nil
}

// DeletePermanently remove o item da lixeira sem volta.
func (a *TrashAPI) DeletePermanently(ctx context.Context, id string) error {
	if err := a.store.Delete(ctx, domain.StoreTrash, id); err != nil {
		return err
	}
	a.bus.Publish(events.Event{Type: events.TrashChanged, Store: domain.StoreTrash, Key: id})
	return nil
}

// Expired devolve os itens além da janela de retenção, candidatos à varredura.
func (a *TrashAPI) Expired(ctx context.Context, now time.Time) ([]entity.TrashItem, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.TrashItem, 0)
	for _, item := range all {
		if item.ExpiresAt(a.retention).Before(now) {
			out = append(out, item)
		}
	}
	return out, nil
}
