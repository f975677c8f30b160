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

// CustomerAPI operações de clientes sobre a store "customers".
type CustomerAPI struct {
	store Store
	trash *TrashAPI
	bus   *events.Bus
}

// NewCustomerAPI constrói a API.
func NewCustomerAPI(store Store, trash *TrashAPI, bus *events.Bus) *CustomerAPI {
	return &CustomerAPI{store: store, trash: trash, bus: bus}
}

// GetAll devolve todos os clientes.
func (a *CustomerAPI) GetAll(ctx context.Context) ([]entity.Customer, error) {
	records, err := a.store.List(ctx, domain.StoreCustomers)
	if err != nil {
		return nil, err
	}
	return decodeAll[entity.Customer](records)
}

// GetByID devolve um cliente; domain.ErrNotFound se ausente.
func (a *CustomerAPI) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	rec, err := a.store.Get(ctx, domain.StoreCustomers, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.Customer](rec)
}

// Create cadastra um cliente novo: atribui ID, carimbos e o kind default.
func (a *CustomerAPI) Create(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	if c.Kind == "" {
		c.Kind = entity.KindFromDocument(c.CPFCNPJ)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := a.save(ctx, c); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreCustomers, Key: c.ID})
	return &c, nil
}

// Update sobrescreve o cadastro inteiro (sem patch parcial; último grava vence).
func (a *CustomerAPI) Update(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	if c.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if c.Kind == "" {
		c.Kind = entity.KindFromDocument(c.CPFCNPJ)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, c); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreCustomers, Key: c.ID})
	return &c, nil
}

// Delete move o cliente para a lixeira (exclusão lógica).
func (a *CustomerAPI) Delete(ctx context.Context, id string) error {
	_, err := a.trash.MoveToTrash(ctx, domain.StoreCustomers, id)
	return err
}

// Search filtra por nome, telefone, email ou CPF/CNPJ (sem acento, sem caixa).
func (a *CustomerAPI) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(all))
	for _, c := range all {
		if matches(term, c.Name, c.Phone, c.Email, c.CPFCNPJ) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (a *CustomerAPI) save(ctx context.Context, c entity.Customer) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializar cliente: %w", err)
	}
	_, err = a.store.Put(ctx, domain.StoreCustomers, c.ID, data)
	return err
}
