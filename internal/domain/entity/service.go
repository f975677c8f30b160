package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus ciclo de vida de uma ordem de serviço.
// Enum unificado: as telas antigas divergiam entre waiting/... e pending/diagnosed/...
type ServiceStatus string

const (
	ServiceWaiting    ServiceStatus = "waiting"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceDelivered  ServiceStatus = "delivered"
)

// Valid informa se o status é um dos valores declarados.
func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceWaiting, ServiceInProgress, ServiceCompleted, ServiceDelivered:
		return true
	}
	return false
}

// Part peça usada no serviço.
type Part struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Service representa uma ordem de serviço de reparo.
// CustomerName/DeviceName são fallbacks de exibição quando não há vínculo por ID.
type Service struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customerId,omitempty"`
	CustomerName     string           `json:"customer,omitempty"`
	DeviceID         string           `json:"deviceId,omitempty"`
	DeviceName       string           `json:"device,omitempty"`
	Status           ServiceStatus    `json:"status" validate:"required,oneof=waiting in_progress completed delivered"`
	Parts            []Part           `json:"parts,omitempty"`
	LaborCost        decimal.Decimal  `json:"laborCost"`
	ManualPartsTotal *decimal.Decimal `json:"manualPartsTotal,omitempty"`
	Technician       string           `json:"technician,omitempty"`
	WarrantyMonths   int              `json:"warranty,omitempty" validate:"min=0"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// PartsTotal soma preço x quantidade das peças; ManualPartsTotal, se presente, sobrepõe a soma.
func (s Service) PartsTotal() decimal.Decimal {
	if s.ManualPartsTotal != nil {
		return *s.ManualPartsTotal
	}
	total := decimal.Zero
	for _, p := range s.Parts {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

// TotalCost valor total derivado: peças + mão de obra.
func (s Service) TotalCost() decimal.Decimal {
	return s.PartsTotal().Add(s.LaborCost)
}

// DisplayName nome exibido na lixeira, ex. "iPhone 13 - Ana".
func (s Service) DisplayName() string {
	switch {
	case s.DeviceName != "" && s.CustomerName != "":
		return s.DeviceName + " - " + s.CustomerName
	case s.DeviceName != "":
		return s.DeviceName
	case s.CustomerName != "":
		return s.CustomerName
	}
	return s.ID
}
