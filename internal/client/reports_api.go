package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/entity"
)

// DashboardData estatísticas agregadas exibidas nos relatórios.
// MonthlyRevenue indexa janeiro em 0; só considera o ano de referência.
type DashboardData struct {
	GeneratedAt      time.Time                    `json:"generatedAt"`
	Year             int                          `json:"year"`
	TotalCustomers   int                          `json:"totalCustomers"`
	TotalDevices     int                          `json:"totalDevices"`
	TotalServices    int                          `json:"totalServices"`
	OpenServices     int                          `json:"openServices"`
	TotalRevenue     decimal.Decimal              `json:"totalRevenue"`
	MonthlyRevenue   [12]decimal.Decimal          `json:"monthlyRevenue"`
	ServicesByStatus map[entity.ServiceStatus]int `json:"servicesByStatus"`
	DevicesByType    map[entity.DeviceType]int    `json:"devicesByType"`
	DocumentsByType  map[entity.DocumentType]int  `json:"documentsByType"`
	DocumentsValue   decimal.Decimal              `json:"documentsValue"`
	StockAlerts      []entity.InventoryItem       `json:"stockAlerts"`
}

// ReportsAPI agrega os dados das stores vivas em estatísticas de dashboard.
// Honra a flag de reset: com ela ligada, devolve o dashboard zerado sem tocar
// nos dados subjacentes, até a próxima recarga viva bem-sucedida limpar a flag.
type ReportsAPI struct {
	store Store
	cache *CacheStore
}

// NewReportsAPI constrói a API.
func NewReportsAPI(store Store, cache *CacheStore) *ReportsAPI {
	return &ReportsAPI{store: store, cache: cache}
}

// emptyDashboard forma zerada com todos os mapas e fatias inicializados.
func emptyDashboard(now time.Time) *DashboardData {
	d := &DashboardData{
		GeneratedAt:      now,
		Year:             now.Year(),
		TotalRevenue:     decimal.Zero,
		DocumentsValue:   decimal.Zero,
		ServicesByStatus: make(map[entity.ServiceStatus]int),
		DevicesByType:    make(map[entity.DeviceType]int),
		DocumentsByType:  make(map[entity.DocumentType]int),
		StockAlerts:      []entity.InventoryItem{},
	}
	for i := range d.MonthlyRevenue {
		d.MonthlyRevenue[i] = decimal.Zero
	}
	return d
}

// Dashboard calcula as estatísticas do ano corrente.
func (a *ReportsAPI) Dashboard(ctx context.Context) (*DashboardData, error) {
	now := time.Now().UTC()

	reset, err := a.cache.ResetFlagSet(ctx)
	if err != nil {
		return nil, err
	}
	if reset {
		return emptyDashboard(now), nil
	}

	// Consultar as cinco stores em paralelo (listagens independentes)
	type listResult struct {
		store   string
		records []Record
		err     error
	}
	stores := []string{
		domain.StoreCustomers,
		domain.StoreDevices,
		domain.StoreServices,
		domain.StoreInventory,
		domain.StoreDocuments,
	}
	results := make(chan listResult, len(stores))
	for _, st := range stores {
		go func(st string) {
			records, err := a.store.List(ctx, st)
			results <- listResult{store: st, records: records, err: err}
		}(st)
	}

	byStore := make(map[string][]Record, len(stores))
	for range stores {
		res := <-results
		if res.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", res.store, res.err)
		}
		byStore[res.store] = res.records
	}

	d := emptyDashboard(now)

	customers, err := decodeAll[entity.Customer](byStore[domain.StoreCustomers])
	if err != nil {
		return nil, err
	}
	d.TotalCustomers = len(customers)

	devices, err := decodeAll[entity.Device](byStore[domain.StoreDevices])
	if err != nil {
		return nil, err
	}
	d.TotalDevices = len(devices)
	for _, dev := range devices {
		d.DevicesByType[dev.Type]++
	}

	services, err := decodeAll[entity.Service](byStore[domain.StoreServices])
	if err != nil {
		return nil, err
	}
	d.TotalServices = len(services)
	for _, s := range services {
		d.ServicesByStatus[s.Status]++
		switch s.Status {
		case entity.ServiceWaiting, entity.ServiceInProgress:
			d.OpenServices++
		case entity.ServiceCompleted, entity.ServiceDelivered:
			// Receita conta no mês da última atualização (conclusão)
			d.TotalRevenue = d.TotalRevenue.Add(s.TotalCost())
			if s.UpdatedAt.Year() == d.Year {
				m := int(s.UpdatedAt.Month()) - 1
				d.MonthlyRevenue[m] = d.MonthlyRevenue[m].Add(s.TotalCost())
			}
		}
	}

	documents, err := decodeAll[entity.Document](byStore[domain.StoreDocuments])
	if err != nil {
		return nil, err
	}
	for _, doc := range documents {
		if doc.Status == entity.StatusCancelada {
			continue
		}
		d.DocumentsByType[doc.Type]++
		d.DocumentsValue = d.DocumentsValue.Add(doc.Value)
	}

	items, err := decodeAll[entity.InventoryItem](byStore[domain.StoreInventory])
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.StockStatus() != entity.StockOK {
			d.StockAlerts = append(d.StockAlerts, it)
		}
	}

	if raw, err := json.Marshal(d); err == nil {
		_ = a.cache.SaveReportCache(ctx, raw)
	}
	return d, nil
}

// CachedDashboard devolve o último dashboard calculado, ou nil se nunca houve.
// Com a flag de reset ligada, devolve o dashboard zerado.
func (a *ReportsAPI) CachedDashboard(ctx context.Context) (*DashboardData, error) {
	reset, err := a.cache.ResetFlagSet(ctx)
	if err != nil {
		return nil, err
	}
	if reset {
		return emptyDashboard(time.Now().UTC()), nil
	}
	raw, err := a.cache.ReportCache(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var d DashboardData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decodificar dashboard em cache: %w", err)
	}
	return &d, nil
}
