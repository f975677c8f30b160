package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
	"github.com/paulocell/paulocell-api/internal/events"
)

// SettingsAPI configurações da loja, chaves singleton na store "settings".
type SettingsAPI struct {
	store Store
	bus   *events.Bus
}

// NewSettingsAPI constrói a API.
func NewSettingsAPI(store Store, bus *events.Bus) *SettingsAPI {
	return &SettingsAPI{store: store, bus: bus}
}

// Company devolve os dados cadastrais da loja; zero-value se nunca gravados.
func (a *SettingsAPI) Company(ctx context.Context) (*entity.CompanyData, error) {
	var out entity.CompanyData
	if err := a.get(ctx, entity.SettingsCompanyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveCompany grava os dados cadastrais da loja.
func (a *SettingsAPI) SaveCompany(ctx context.Context, c entity.CompanyData) error {
	return a.put(ctx, entity.SettingsCompanyKey, c)
}

// Notifications devolve as preferências de notificação; zero-value se nunca gravadas.
func (a *SettingsAPI) Notifications(ctx context.Context) (*entity.NotificationSettings, error) {
	var out entity.NotificationSettings
	if err := a.get(ctx, entity.SettingsNotificationsKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveNotifications grava as preferências de notificação.
func (a *SettingsAPI) SaveNotifications(ctx context.Context, n entity.NotificationSettings) error {
	return a.put(ctx, entity.SettingsNotificationsKey, n)
}

// InvoiceAPI devolve as credenciais do provedor de notas; zero-value se nunca gravadas.
func (a *SettingsAPI) InvoiceAPI(ctx context.Context) (*entity.InvoiceAPIConfig, error) {
	var out entity.InvoiceAPIConfig
	if err := a.get(ctx, entity.SettingsInvoiceAPIKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveInvoiceAPI grava as credenciais do provedor de notas.
func (a *SettingsAPI) SaveInvoiceAPI(ctx context.Context, cfg entity.InvoiceAPIConfig) error {
	return a.put(ctx, entity.SettingsInvoiceAPIKey, cfg)
}

func (a *SettingsAPI) get(ctx context.Context, key string, out any) error {
	rec, err := a.store.Get(ctx, domain.StoreSettings, key)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil // nunca gravado, devolve zero-value
	}
	if err := json.Unmarshal(rec.Data, out); err != nil {
		return fmt.Errorf("decodificar configuração %q: %w", key, err)
	}
	return nil
}

func (a *SettingsAPI) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar configuração %q: %w", key, err)
	}
	if _, err := a.store.Put(ctx, domain.StoreSettings, key, data); err != nil {
		return err
	}
	a.bus.Publish(events.Event{Type: events.DataUpdated, Store: domain.StoreSettings, Key: key})
	return nil
}
