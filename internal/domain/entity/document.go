package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de nota fiscal.
type DocumentType string

const (
	DocumentNFe  DocumentType = "nfe"
	DocumentNFCe DocumentType = "nfce"
	DocumentNFSe DocumentType = "nfse"
)

// Valid informa se o tipo é um dos valores declarados.
func (t DocumentType) Valid() bool {
	return t == DocumentNFe || t == DocumentNFCe || t == DocumentNFSe
}

// DocumentStatus ciclo de vida unificado da nota fiscal.
// As telas antigas carregavam dois enums incompatíveis (Emitida/Cancelada/Pendente
// e Em Aberto/Paga/Cancelada/Vencida); aqui viram um único ciclo:
//
//	pendente -> emitida -> paga
//	emitida  -> vencida -> paga
//	qualquer estado não pago -> cancelada (terminal)
type DocumentStatus string

const (
	StatusPendente  DocumentStatus = "pendente"
	StatusEmitida   DocumentStatus = "emitida"
	StatusPaga      DocumentStatus = "paga"
	StatusVencida   DocumentStatus = "vencida"
	StatusCancelada DocumentStatus = "cancelada"
)

// Valid informa se o status é um dos valores declarados.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusEmitida, StatusPaga, StatusVencida, StatusCancelada:
		return true
	}
	return false
}

// CanTransition verifica se a mudança de status respeita o ciclo unificado.
func (s DocumentStatus) CanTransition(to DocumentStatus) bool {
	if !to.Valid() || s == to {
		return false
	}
	switch s {
	case StatusPendente:
		return to == StatusEmitida || to == StatusCancelada
	case StatusEmitida:
		return to == StatusPaga || to == StatusVencida || to == StatusCancelada
	case StatusVencida:
		return to == StatusPaga || to == StatusCancelada
	}
	// paga e cancelada são terminais
	return false
}

// DocumentItem linha da nota fiscal.
type DocumentItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
}

// Document nota fiscal (nfe/nfce/nfse) emitida via provedor externo.
// InvoiceID/InvoiceURL correlacionam com o provedor; a emissão em si não acontece aqui.
type Document struct {
	ID           string          `json:"id"`
	Type         DocumentType    `json:"type" validate:"required,oneof=nfe nfce nfse"`
	Number       string          `json:"number" validate:"required"`
	CustomerID   string          `json:"customerId,omitempty"`
	CustomerName string          `json:"customer,omitempty"`
	Date         time.Time       `json:"date"`
	Value        decimal.Decimal `json:"value"`
	Status       DocumentStatus  `json:"status" validate:"required,oneof=pendente emitida paga vencida cancelada"`
	Items        []DocumentItem  `json:"items,omitempty"`
	InvoiceID    string          `json:"invoiceId,omitempty"`
	InvoiceURL   string          `json:"invoiceUrl,omitempty"`
	EmailSentTo  string          `json:"emailSentTo,omitempty"` // último destinatário, para reenvio rápido
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// DisplayName nome exibido na lixeira, ex. "NFE 000123".
func (d Document) DisplayName() string {
	label := string(d.Type)
	switch d.Type {
	case DocumentNFe:
		label = "NFE"
	case DocumentNFCe:
		label = "NFCE"
	case DocumentNFSe:
		label = "NFSE"
	}
	if d.Number != "" {
		return label + " " + d.Number
	}
	return label
}
