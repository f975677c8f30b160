package client

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/paulocell/paulocell-api/internal/events"
	"github.com/paulocell/paulocell-api/pkg/config"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// Client agrega as APIs de entidade sobre a composição offline-first.
// É o ponto único de construção: as telas consomem só este tipo.
type Client struct {
	Customers *CustomerAPI
	Devices   *DeviceAPI
	Services  *ServiceAPI
	Inventory *InventoryAPI
	Documents *DocumentAPI
	Settings  *SettingsAPI
	Trash     *TrashAPI
	Reports   *ReportsAPI
	Sync      *SyncAPI
	Refresher *Refresher
	Bus       *events.Bus

	cache *CacheStore
	store Store
}

// New monta o SDK completo: remoto + cache Redis + APIs + refresher.
// O refresher não é iniciado aqui; chame Client.Refresher.Start quando quiser
// o laço de recarga automática.
func New(cfg *config.Config, rdb *redis.Client, log *logger.Logger) *Client {
	bus := events.NewBus()
	cache := NewCacheStore(rdb)
	remote := NewRemoteStore(cfg.Client.RemoteBaseURL, cfg.Client.UserID, cfg.Client.RequestTimeout)
	store := NewOfflineFirstStore(remote, cache, log)

	trash := NewTrashAPI(store, bus, cfg.Trash.Retention())
	reports := NewReportsAPI(store, cache)

	return &Client{
		Customers: NewCustomerAPI(store, trash, bus),
		Devices:   NewDeviceAPI(store, trash, bus),
		Services:  NewServiceAPI(store, trash, bus),
		Inventory: NewInventoryAPI(store, bus),
		Documents: NewDocumentAPI(store, trash, bus),
		Settings:  NewSettingsAPI(store, bus),
		Trash:     trash,
		Reports:   reports,
		Sync:      NewSyncAPI(remote, cache, store, bus, log),
		Refresher: NewRefresher(reports, bus, log, cfg.Client.RefreshInterval),
		Bus:       bus,

		cache: cache,
		store: store,
	}
}

// Store expõe a composição offline-first para usos fora das APIs tipadas.
func (c *Client) Store() Store { return c.store }

// Offline informa se a última chamada remota falhou.
func (c *Client) Offline(ctx context.Context) (bool, error) {
	return c.cache.Offline(ctx)
}

// Close encerra o refresher, se iniciado.
func (c *Client) Close() {
	c.Refresher.Stop()
}
