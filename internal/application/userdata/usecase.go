// Package userdata contém o caso de uso da fachada de persistência por usuário:
// documentos JSON endereçados pela chave natural composta (userId, store, key),
// no lugar de tabelas por entidade com schema próprio.
package userdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/repository"
)

// UseCase operações da fachada chave/valor.
type UseCase struct {
	repo repository.UserDataRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.UserDataRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devolve o documento de uma chave; domain.ErrNotFound se ausente.
func (uc *UseCase) Get(ctx context.Context, userID, store, key string) (*dto.UserDataResponse, error) {
	if userID == "" || store == "" || key == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.repo.Get(ctx, userID, store, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.UserDataResponse{Success: true, Data: rec.Data}, nil
}

// Upsert insere ou sobrescreve o documento da chave, carimbando updatedAt agora.
func (uc *UseCase) Upsert(ctx context.Context, userID, store, key string, data json.RawMessage) (*dto.UpsertUserDataResponse, error) {
	if userID == "" || store == "" || key == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	rec := &repository.UserDataRecord{
		UserID:    userID,
		Store:     store,
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return &dto.UpsertUserDataResponse{Success: true, ID: rec.ID, UpdatedAt: rec.UpdatedAt}, nil
}

// Delete remove o documento da chave; domain.ErrNotFound se não existia.
func (uc *UseCase) Delete(ctx context.Context, userID, store, key string) error {
	if userID == "" || store == "" || key == "" {
		return domain.ErrInvalidInput
	}
	deleted, err := uc.repo.Delete(ctx, userID, store, key)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List devolve todas as chaves e documentos da store.
func (uc *UseCase) List(ctx context.Context, userID, store string) (*dto.ListUserDataResponse, error) {
	if userID == "" || store == "" {
		return nil, domain.ErrInvalidInput
	}
	recs, err := uc.repo.List(ctx, userID, store)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.UserDataEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, dto.UserDataEntry{
			Key:       rec.Key,
			Data:      rec.Data,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return &dto.ListUserDataResponse{Success: true, Data: entries, Count: len(entries)}, nil
}
