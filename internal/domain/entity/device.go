package entity

import (
	"strings"
	"time"
)

// DeviceType categoria do aparelho.
type DeviceType string

const (
	DeviceCellphone DeviceType = "cellphone"
	DeviceTablet    DeviceType = "tablet"
	DeviceNotebook  DeviceType = "notebook"
	DeviceOther     DeviceType = "other"
)

// Valid informa se o tipo é um dos valores declarados.
func (t DeviceType) Valid() bool {
	switch t {
	case DeviceCellphone, DeviceTablet, DeviceNotebook, DeviceOther:
		return true
	}
	return false
}

// PasswordType forma de desbloqueio registrada para o aparelho.
type PasswordType string

const (
	PasswordNone    PasswordType = "none"
	PasswordPIN     PasswordType = "pin"
	PasswordPattern PasswordType = "pattern"
	PasswordText    PasswordType = "password"
)

// Valid informa se o tipo de senha é um dos valores declarados.
func (p PasswordType) Valid() bool {
	switch p {
	case PasswordNone, PasswordPIN, PasswordPattern, PasswordText:
		return true
	}
	return false
}

// Device representa um aparelho recebido para reparo.
// OwnerName é fallback de exibição quando o aparelho não está vinculado a um cliente.
type Device struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"owner,omitempty"`
	OwnerName     string       `json:"ownerName,omitempty"`
	Type          DeviceType   `json:"type" validate:"required,oneof=cellphone tablet notebook other"`
	Brand         string       `json:"brand" validate:"required"`
	Model         string       `json:"model" validate:"required"`
	SerialNumber  string       `json:"serialNumber,omitempty"`
	Condition     string       `json:"condition,omitempty"`
	PasswordType  PasswordType `json:"passwordType" validate:"omitempty,oneof=none pin pattern password"`
	PasswordValue string       `json:"passwordValue,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ValidatePassword verifica a coerência entre tipo e valor da senha:
// tipo none exige valor vazio; pin aceita somente dígitos; os demais exigem valor.
func (d Device) ValidatePassword() bool {
	switch d.PasswordType {
	case PasswordNone:
		return d.PasswordValue == ""
	case PasswordPIN:
		if d.PasswordValue == "" {
			return false
		}
		for _, r := range d.PasswordValue {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	case PasswordPattern, PasswordText:
		return d.PasswordValue != ""
	}
	return false
}

// DisplayName nome exibido na lixeira e em listagens, ex. "Apple iPhone 13".
func (d Device) DisplayName() string {
	name := strings.TrimSpace(d.Brand + " " + d.Model)
	if name != "" {
		return name
	}
	return d.SerialNumber
}
