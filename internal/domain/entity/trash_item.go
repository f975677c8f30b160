package entity

import (
	"encoding/json"
	"time"
)

// TrashKind discrimina o tipo da entidade guardada na lixeira.
type TrashKind string

const (
	TrashCustomer  TrashKind = "customer"
	TrashDevice    TrashKind = "device"
	TrashService   TrashKind = "service"
	TrashDocument  TrashKind = "document"
	TrashInventory TrashKind = "inventory"
)

// TrashItem envolve uma entidade removida logicamente.
// ID é gerado a cada exclusão; LiveID guarda a chave que o registro ocupava na
// store de origem. Data preserva o payload original byte a byte para
// restauração exata.
type TrashItem struct {
	ID        string          `json:"id"`
	LiveID    string          `json:"liveId"`
	Name      string          `json:"name"`
	Type      TrashKind       `json:"type"`
	DeletedAt time.Time       `json:"deletedAt"`
	Data      json.RawMessage `json:"data"`
}

// ExpiresAt calcula a data de expiração; não é armazenada, só derivada.
func (t TrashItem) ExpiresAt(retention time.Duration) time.Time {
	return t.DeletedAt.Add(retention)
}

// DaysLeft dias restantes até a varredura remover o item (mínimo zero).
func (t TrashItem) DaysLeft(retention time.Duration, now time.Time) int {
	left := t.ExpiresAt(retention).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left.Hours() / 24)
}
