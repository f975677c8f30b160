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

// seedDemoData grava o conjunto de demonstração usado em apresentações e na
// primeira carga. IDs fixos com prefixo "demo-" para a semeadura ser idempotente.
func seedDemoData(ctx context.Context, store Store) error {
	now := time.Now().UTC()

	customers := []entity.Customer{
		{
			ID: "demo-customer-1", Name: "Ana Souza", Phone: "(98) 99999-1234",
			Email: "ana.souza@example.com", CPFCNPJ: "12345678901",
			Kind: entity.KindIndividual, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-customer-2", Name: "Carlos Lima", Phone: "(98) 98888-5678",
			Kind: entity.KindIndividual, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-customer-3", Name: "Mercado São José LTDA", Phone: "(98) 3232-0000",
			CPFCNPJ: "12345678000199", Kind: entity.KindCompany,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	devices := []entity.Device{
		{
			ID: "demo-device-1", OwnerID: "demo-customer-1", OwnerName: "Ana Souza",
			Type: entity.DeviceCellphone, Brand: "Apple", Model: "iPhone 13",
			SerialNumber: "DEMO-SN-0001", PasswordType: entity.PasswordPIN, PasswordValue: "1234",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-device-2", OwnerID: "demo-customer-2", OwnerName: "Carlos Lima",
			Type: entity.DeviceCellphone, Brand: "Samsung", Model: "Galaxy S21",
			PasswordType: entity.PasswordNone, CreatedAt: now, UpdatedAt: now,
		},
	}
	services := []entity.Service{
		{
			ID: "demo-service-1", CustomerID: "demo-customer-1", CustomerName: "Ana Souza",
			DeviceID: "demo-device-1", DeviceName: "iPhone 13",
			Status: entity.ServiceInProgress,
			Parts: []entity.Part{
				{ID: "demo-part-1", Name: "Tela iPhone 13", Price: decimal.NewFromInt(450), Quantity: 1},
			},
			LaborCost: decimal.NewFromInt(120), Technician: "Paulo", WarrantyMonths: 3,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-service-2", CustomerID: "demo-customer-2", CustomerName: "Carlos Lima",
			DeviceID: "demo-device-2", DeviceName: "Galaxy S21",
			Status: entity.ServiceCompleted, LaborCost: decimal.NewFromInt(80),
			Technician: "Paulo", CreatedAt: now, UpdatedAt: now,
		},
	}
	items := []entity.InventoryItem{
		{
			ID: "demo-item-1", Name: "Tela iPhone 13", SKU: "TL-IP13",
			Category: "Telas", Compatibility: "iPhone 13",
			Price: decimal.NewFromInt(450), CurrentStock: 4, MinimumStock: 2,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-item-2", Name: "Bateria Galaxy S21", SKU: "BT-S21",
			Category: "Baterias", Compatibility: "Galaxy S21",
			Price: decimal.NewFromInt(180), CurrentStock: 1, MinimumStock: 3,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-item-3", Name: "Película de vidro universal", SKU: "PV-UNI",
			Category: "Acessórios", Price: decimal.NewFromInt(25),
			CurrentStock: 0, MinimumStock: 10, CreatedAt: now, UpdatedAt: now,
		},
	}
	documents := []entity.Document{
		{
			ID: "demo-document-1", Type: entity.DocumentNFSe, Number: "000101",
			CustomerID: "demo-customer-2", CustomerName: "Carlos Lima",
			Date: now, Value: decimal.NewFromInt(80), Status: entity.StatusEmitida,
			Items: []entity.DocumentItem{
				{Description: "Troca de bateria", Quantity: 1, UnitValue: decimal.NewFromInt(80)},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "demo-document-2", Type: entity.DocumentNFCe, Number: "000102",
			CustomerID: "demo-customer-3", CustomerName: "Mercado São José LTDA",
			Date: now, Value: decimal.NewFromInt(25), Status: entity.StatusPendente,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	put := func(store_ string, key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("serializar demo %s/%s: %w", store_, key, err)
		}
		if _, err := store.Put(ctx, store_, key, data); err != nil {
			return fmt.Errorf("gravar demo %s/%s: %w", store_, key, err)
		}
		return nil
	}

	for _, c := range customers {
		if err := put(domain.StoreCustomers, c.ID, c); err != nil {
			return err
		}
	}
	for _, d := range devices {
		if err := put(domain.StoreDevices, d.ID, d); err != nil {
			return err
		}
	}
	for _, s := range services {
		if err := put(domain.StoreServices, s.ID, s); err != nil {
			return err
		}
	}
	for _, it := range items {
		if err := put(domain.StoreInventory, it.ID, it); err != nil {
			return err
		}
	}
	for _, doc := range documents {
		if err := put(domain.StoreDocuments, doc.ID, doc); err != nil {
			return err
		}
	}
	return nil
}
