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

// DocumentAPI operações de notas fiscais sobre a store "documents".
type DocumentAPI struct {
	store Store
	trash *TrashAPI
	bus   *events.Bus
}

// NewDocumentAPI constrói a API.
func NewDocumentAPI(store Store, trash *TrashAPI, bus *events.Bus) *DocumentAPI {
	return &DocumentAPI{store: store, trash: trash, bus: bus}
}

// GetAll devolve todas as notas e sinaliza o carregamento para as telas.
func (a *DocumentAPI) GetAll(ctx context.Context) ([]entity.Document, error) {
	records, err := a.store.List(ctx, domain.StoreDocuments)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[entity.Document](records)
	if err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DocumentsLoaded, Store: domain.StoreDocuments})
	return docs, nil
}

// GetByID devolve uma nota; domain.ErrNotFound se ausente.
func (a *DocumentAPI) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	rec, err := a.store.Get(ctx, domain.StoreDocuments, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return decodeOne[entity.Document](rec)
}

// GetByCustomer devolve as notas de um cliente.
func (a *DocumentAPI) GetByCustomer(ctx context.Context, customerID string) ([]entity.Document, error) {
	records, err := a.store.List(ctx, domain.StoreDocuments)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll[entity.Document](records)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Document, 0)
	for _, d := range all {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

// Create registra uma nota nova; status default pendente, data default hoje.
func (a *DocumentAPI) Create(ctx context.Context, d entity.Document) (*entity.Document, error) {
	now := time.Now().UTC()
	if d.Status == "" {
		d.Status = entity.StatusPendente
	}
	if d.Date.IsZero() {
		d.Date = now
	}
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	d.ID = uuid.New().String()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := a.save(ctx, d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DocumentCreated, Store: domain.StoreDocuments, Key: d.ID})
	return &d, nil
}

// Update sobrescreve a nota inteira. Mudança de status passa por UpdateStatus;
// aqui o status recebido precisa ser igual ao atual ou uma transição válida.
func (a *DocumentAPI) Update(ctx context.Context, d entity.Document) (*entity.Document, error) {
	if d.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if d.Status != existing.Status && !existing.Status.CanTransition(d.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, existing.Status, d.Status)
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DocumentUpdated, Store: domain.StoreDocuments, Key: d.ID})
	return &d, nil
}

// UpdateStatus avança o ciclo de vida da nota respeitando as transições permitidas.
func (a *DocumentAPI) UpdateStatus(ctx context.Context, id string, to entity.DocumentStatus) (*entity.Document, error) {
	d, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, d.Status, to)
	}
	d.Status = to
	d.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, *d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DocumentUpdated, Store: domain.StoreDocuments, Key: d.ID})
	return d, nil
}

// RecordEmailSent registra o último destinatário para reenvio rápido.
// O envio em si acontece fora daqui (provedor externo).
func (a *DocumentAPI) RecordEmailSent(ctx context.Context, id, recipient string) (*entity.Document, error) {
	if recipient == "" {
		return nil, fmt.Errorf("%w: destinatário vazio", domain.ErrInvalidInput)
	}
	d, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.EmailSentTo = recipient
	d.UpdatedAt = time.Now().UTC()
	if err := a.save(ctx, *d); err != nil {
		return nil, err
	}
	a.bus.Publish(events.Event{Type: events.DocumentUpdated, Store: domain.StoreDocuments, Key: d.ID})
	return d, nil
}

// Delete move a nota para a lixeira (exclusão lógica).
func (a *DocumentAPI) Delete(ctx context.Context, id string) error {
	_, err := a.trash.MoveToTrash(ctx, domain.StoreDocuments, id)
	return err
}

// Search filtra por número ou cliente (sem acento, sem caixa).
func (a *DocumentAPI) Search(ctx context.Context, term string) ([]entity.Document, error) {
	records, err := a.store.List(ctx, domain.StoreDocuments)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll[entity.Document](records)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Document, 0, len(all))
	for _, d := range all {
		if matches(term, d.Number, d.CustomerName) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (a *DocumentAPI) save(ctx context.Context, d entity.Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar nota fiscal: %w", err)
	}
	_, err = a.store.Put(ctx, domain.StoreDocuments, d.ID, data)
	return err
}
