package entity

import (
	"strings"
	"time"
)

// CustomerKind distingue pessoa física de pessoa jurídica.
// Declarado na criação do cadastro em vez da antiga heurística multi-campo.
type CustomerKind string

const (
	KindIndividual CustomerKind = "individual"
	KindCompany    CustomerKind = "company"
)

// Valid informa se o kind é um dos valores declarados.
func (k CustomerKind) Valid() bool {
	return k == KindIndividual || k == KindCompany
}

// Address endereço estruturado do cliente.
type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
}

// Customer representa um cliente da assistência técnica.
// Devices, Services e Documents referenciam o cliente por ID (sem cascata).
type Customer struct {
	ID        string       `json:"id"`
	Name      string       `json:"name" validate:"required"`
	Phone     string       `json:"phone" validate:"required"`
	Email     string       `json:"email,omitempty" validate:"omitempty,email"`
	Address   Address      `json:"address,omitempty"`
	CPFCNPJ   string       `json:"cpfCnpj,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	Kind      CustomerKind `json:"kind" validate:"omitempty,oneof=individual company"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// KindFromDocument deduz o kind a partir do documento: CNPJ (14 dígitos) => empresa.
// Usado apenas como default quando o formulário não declara o kind.
func KindFromDocument(cpfCnpj string) CustomerKind {
	digits := 0
	for _, r := range cpfCnpj {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits == 14 {
		return KindCompany
	}
	return KindIndividual
}

// DisplayName nome exibido na lixeira e em listagens.
func (c Customer) DisplayName() string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return c.Phone
}
