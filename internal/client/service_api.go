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

// ServiceAPI operações de ordens de serviço sobre a store "services".
type ServiceAPI struct {
	store Store
	trash *TrashAPI
	bus   *events.Bus
}

// NewServiceAPI constrói a API.
func NewServiceAPI(store Store, trash *TrashAPI, bus *events.Bus) *ServiceAPI {
	return &ServiceAPI{store: store, trash: trash, bus: bus}
}

// GetAll devolve todas as ordens de serviço.
func (a *ServiceAPI) GetAll(ctx context.Context) ([]entity.Service, error) {
	records, err := a.store.List(ctx, domain.StoreServices)
	if err != nil {
		return nil, err
	}
	return decodeAll[entity.Service](records)
}

// GetByID devolve uma ordem de serviço; domain.ErrNotFound se ausente.
func (a *ServiceAPI) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	rec, err := a.store.Get(ctx, domain.StoreServices, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.Service](rec)
}

// GetByCustomer devolve as ordens de um cliente.
func (a *ServiceAPI) GetByCustomer(ctx context.Context, customerID string) ([]entity.Service, error) {
	return a.filter(ctx, func(s entity.Service) bool { return s.CustomerID == customerID })
}

// GetByDevice devolve as ordens de um aparelho.
func (a *ServiceAPI) GetByDevice(ctx context.Context, deviceID string) ([]entity.Service, error) {
	return a.filter(ctx, func(s entity.Service) bool { return s.DeviceID == deviceID })
}

// Create abre uma ordem de serviço: atribui ID e carimbos; status default waiting.
func (a *ServiceAPI) Create(ctx context.Context, s entity.Service) (*entity.Service, error) {
	if s.Status == "" {
		s.Status = entity.ServiceWaiting
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now().UTC()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := a.save(ctx, s); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreServices, Key: s.ID})
	return &s, nil
}

// Update sobrescreve a ordem inteira.
func (a *ServiceAPI) Update(ctx context.Context, s entity.Service) (*entity.Service, error) {
	if s.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.GetByID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, s); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreServices, Key: s.ID})
	return &s, nil
}

// Delete move a ordem para a lixeira (exclusão lógica).
func (a *ServiceAPI) Delete(ctx context.Context, id string) error {
	_, err := a.trash.MoveToTrash(ctx, domain.StoreServices, id)
	return err
}

// Search filtra por cliente, aparelho ou técnico (sem acento, sem caixa).
func (a *ServiceAPI) Search(ctx context.Context, term string) ([]entity.Service, error) {
	return a.filter(ctx, func(s entity.Service) bool {
		return matches(term, s.CustomerName, s.DeviceName, s.Technician)
	})
}

func (a *ServiceAPI) filter(ctx context.Context, keep func(entity.Service) bool) ([]entity.Service, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Service, 0, len(all))
	for _, s := range all {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (a *ServiceAPI) save(ctx context.Context, s entity.Service) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializar ordem de serviço: %w", err)
	}
	_, err = a.store.Put(ctx, domain.StoreServices, s.ID, data)
	return err
}
