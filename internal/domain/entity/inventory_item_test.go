package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paulocell/paulocell-api/internal/domain/entity"
)

func TestInventoryItem_StockStatus(t *testing.T) {
	casos := []struct {
		nome     string
		atual    int
		minimo   int
		esperado entity.StockStatus
	}{
		{"zerado", 0, 5, entity.StockOut},
		{"abaixo do mínimo", 3, 5, entity.StockLow},
		{"igual ao mínimo", 5, 5, entity.StockLow},
		{"acima do mínimo", 6, 5, entity.StockOK},
		{"sem mínimo definido", 1, 0, entity.StockOK},
		{"zerado sem mínimo", 0, 0, entity.StockOut},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			it := entity.InventoryItem{CurrentStock: c.atual, MinimumStock: c.minimo}
			assert.Equal(t, c.esperado, it.StockStatus())
		})
	}
}

func TestCustomer_KindFromDocument(t *testing.T) {
	assert.Equal(t, entity.KindCompany, entity.KindFromDocument("12.345.678/0001-99"),
		"14 dígitos (CNPJ) deduz pessoa jurídica")
	assert.Equal(t, entity.KindIndividual, entity.KindFromDocument("123.456.789-01"),
		"11 dígitos (CPF) deduz pessoa física")
	assert.Equal(t, entity.KindIndividual, entity.KindFromDocument(""),
		"sem documento o default é pessoa física")
}

func TestTrashItem_ExpiresAtEDaysLeft(t *testing.T) {
	retention := 60 * 24 * time.Hour
	deletedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	item := entity.TrashItem{DeletedAt: deletedAt}

	assert.Equal(t, deletedAt.Add(retention), item.ExpiresAt(retention))

	// 10 dias depois da exclusão restam 50
	now := deletedAt.Add(10 * 24 * time.Hour)
	assert.Equal(t, 50, item.DaysLeft(retention, now))

	// depois de expirado o contador trava em zero
	depois := deletedAt.Add(retention + time.Hour)
	assert.Equal(t, 0, item.DaysLeft(retention, depois))
}

func TestDevice_ValidatePassword(t *testing.T) {
	casos := []struct {
		nome   string
		device entity.Device
		ok     bool
	}{
		{"none sem valor", entity.Device{PasswordType: entity.PasswordNone}, true},
		{"none com valor", entity.Device{PasswordType: entity.PasswordNone, PasswordValue: "1234"}, false},
		{"pin numérico", entity.Device{PasswordType: entity.PasswordPIN, PasswordValue: "1234"}, true},
		{"pin com letra", entity.Device{PasswordType: entity.PasswordPIN, PasswordValue: "12a4"}, false},
		{"pin vazio", entity.Device{PasswordType: entity.PasswordPIN}, false},
		{"pattern preenchido", entity.Device{PasswordType: entity.PasswordPattern, PasswordValue: "L"}, true},
		{"password vazio", entity.Device{PasswordType: entity.PasswordText}, false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.ok, c.device.ValidatePassword())
		})
	}
}
