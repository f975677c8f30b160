package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

// InventoryAPI operações de estoque sobre a store "inventory".
// Diferente das demais entidades, itens de estoque são removidos
// definitivamente: não passam pela lixeira.
type InventoryAPI struct {
	store Store
	bus   *events.Bus
}

// NewInventoryAPI constrói a API.
func NewInventoryAPI(store Store, bus *events.Bus) *InventoryAPI {
	return &InventoryAPI{store: store, bus: bus}
}

// GetAll devolve todos os itens de estoque.
func (a *InventoryAPI) GetAll(ctx context.Context) ([]entity.InventoryItem, error) {
	records, err := a.store.List(ctx, domain.StoreInventory)
	if err != nil {
		return nil, err
	}
	return decodeAll[entity.InventoryItem](records)
}

// GetByID devolve um item; domain.ErrNotFound se ausente.
func (a *InventoryAPI) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	rec, err := a.store.Get(ctx, domain.StoreInventory, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.InventoryItem](rec)
}

// Create cadastra um item de estoque novo.
func (a *InventoryAPI) Create(ctx context.Context, it entity.InventoryItem) (*entity.InventoryItem, error) {
	if err := validate.Struct(it); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now().UTC()
	it.ID = uuid.New().String()
	it.CreatedAt = now
	it.UpdatedAt = now
	if err := a.save(ctx, it); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreInventory, Key: it.ID})
	return &it, nil
}

// Update sobrescreve o item inteiro.
func (a *InventoryAPI) Update(ctx context.Context, it entity.InventoryItem) (*entity.InventoryItem, error) {
	if it.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.GetByID(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(it); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, it); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreInventory, Key: it.ID})
	return &it, nil
}

// AdjustStock soma delta ao estoque atual (negativo para baixa).
// O resultado nunca fica abaixo de zero; nesse caso devolve ErrInvalidInput.
func (a *InventoryAPI) AdjustStock(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	it, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := it.CurrentStock + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: estoque insuficiente (%d disponível, baixa de %d)",
			domain.ErrInvalidInput, it.CurrentStock, -delta)
	}
	it.CurrentStock = next
	it.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, *it); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreInventory, Key: it.ID})
	return it, nil
}

// Delete remove o item definitivamente (sem lixeira).
func (a *InventoryAPI) Delete(ctx context.Context, id string) error {
	if err := a.store.Delete(ctx, domain.StoreInventory, id); err != nil {
		return err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreInventory, Key: id})
	return nil
}

// LowStock devolve os itens com estoque zerado ou abaixo do mínimo.
func (a *InventoryAPI) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryItem, 0)
	for _, it := range all {
		if it.StockStatus() != entity.StockOK {
			out = append(out, it)
		}
	}
	return out, nil
}

// Search filtra por nome, SKU, categoria ou compatibilidade (sem acento, sem caixa).
func (a *InventoryAPI) Search(ctx context.Context, term string) ([]entity.InventoryItem, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryItem, 0, len(all))
	for _, it := range all {
		if matches(term, it.Name, it.SKU, it.Category, it.Compatibility) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (a *InventoryAPI) save(ctx context.Context, it entity.InventoryItem) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("serializar item de estoque: %w", err)
	}
	_, err = a.store.Put(ctx, domain.StoreInventory, it.ID, data)
	return err
}
