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

// DeviceAPI operações de aparelhos sobre a store "devices".
type DeviceAPI struct {
	store Store
	trash *TrashAPI
	bus   *events.Bus
}

// NewDeviceAPI constrói a API.
func NewDeviceAPI(store Store, trash *TrashAPI, bus *events.Bus) *DeviceAPI {
	return &DeviceAPI{store: store, trash: trash, bus: bus}
}

// GetAll devolve todos os aparelhos.
func (a *DeviceAPI) GetAll(ctx context.Context) ([]entity.Device, error) {
	records, err := a.store.List(ctx, domain.StoreDevices)
	if err != nil {
		return nil, err
	}
	return decodeAll[entity.Device](records)
}

// GetByID devolve um aparelho; domain.ErrNotFound se ausente.
func (a *DeviceAPI) GetByID(ctx context.Context, id string) (*entity.Device, error) {
	rec, err := a.store.Get(ctx, domain.StoreDevices, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.Device](rec)
}

// GetByOwner devolve os aparelhos vinculados a um cliente.
func (a *DeviceAPI) GetByOwner(ctx context.Context, customerID string) ([]entity.Device, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Device, 0)
	for _, d := range all {
		if d.OwnerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

// Create registra um aparelho novo: atribui ID e carimbos, valida tipo e senha.
func (a *DeviceAPI) Create(ctx context.Context, d entity.Device) (*entity.Device, error) {
	if d.PasswordType == "" {
		d.PasswordType = entity.PasswordNone
	}
	if err := a.check(d); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d.ID = uuid.New().String()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := a.save(ctx, d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreDevices, Key: d.ID})
	return &d, nil
}

// Update sobrescreve o registro inteiro do aparelho.
func (a *DeviceAPI) Update(ctx context.Context, d entity.Device) (*entity.Device, error) {
	if d.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if d.PasswordType == "" {
		d.PasswordType = entity.PasswordNone
	}
	if err := a.check(d); err != nil {
		return nil, err
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreDevices, Key: d.ID})
	return &d, nil
}

// Delete move o aparelho para a lixeira (exclusão lógica).
func (a *DeviceAPI) Delete(ctx context.Context, id string) error {
	_, err := a.trash.MoveToTrash(ctx, domain.StoreDevices, id)
	return err
}

// Search filtra por marca, modelo, série ou dono (sem acento, sem caixa).
func (a *DeviceAPI) Search(ctx context.Context, term string) ([]entity.Device, error) {
	all, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Device, 0, len(all))
	for _, d := range all {
		if matches(term, d.Brand, d.Model, d.SerialNumber, d.OwnerName) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (a *DeviceAPI) check(d entity.Device) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !d.ValidatePassword() {
		return fmt.Errorf("%w: senha incompatível com o tipo %s", domain.ErrInvalidInput, d.PasswordType)
	}
	return nil
}

func (a *DeviceAPI) save(ctx context.Context, d entity.Device) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar aparelho: %w", err)
	}
	_, err = a.store.Put(ctx, domain.StoreDevices, d.ID, data)
	return err
}
