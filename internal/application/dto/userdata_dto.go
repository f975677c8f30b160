package dto

import (
	"encoding/json"
	"time"
)

// UpsertUserDataRequest corpo de PUT/POST /api/user-data/:userId/:store/:key.
type UpsertUserDataRequest struct {
	Data json.RawMessage `json:"data"`
}

// UserDataResponse resposta de GET de uma chave.
type UserDataResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// UpsertUserDataResponse resposta de upsert com o identificador e o carimbo gravados.
type UpsertUserDataResponse struct {
	Success   bool      `json:"success"`
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteUserDataResponse resposta de DELETE.
type DeleteUserDataResponse struct {
	Success bool `json:"success"`
}

// UserDataEntry item da listagem de uma store.
type UserDataEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ListUserDataResponse resposta de GET /api/user-data/:userId/:store.
type ListUserDataResponse struct {
	Success bool            `json:"success"`
	Data    []UserDataEntry `json:"data"`
	Count   int             `json:"count"`
}

// ErrorResponse corpo de erro HTTP, no formato {success:false, message}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
