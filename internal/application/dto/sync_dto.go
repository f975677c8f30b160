package dto

import (
	"encoding/json"
	"time"
)

// SyncChange uma mutação pendente enviada pelo cliente (ou devolvida como conflito,
// caso em que Data/UpdatedAt carregam a cópia do servidor).
type SyncChange struct {
	Store     string          `json:"store"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Deleted   bool            `json:"deleted,omitempty"`
}

// SyncRequest corpo de POST /api/user-data/:userId/sync.
type SyncRequest struct {
	Changes []SyncChange `json:"changes"`
}

// SyncResponse resultado do sync em lote.
type SyncResponse struct {
	Success   bool         `json:"success"`
	Applied   int          `json:"applied"`
	Conflicts []SyncChange `json:"conflicts,omitempty"`
}
