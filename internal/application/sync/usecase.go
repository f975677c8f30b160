// Package sync aplica em lote as mutações feitas offline pelo cliente.
//
// Política de reconciliação: last-write-wins por updatedAt. Uma mudança mais
// antiga que a linha armazenada não é aplicada; ela volta em Conflicts com a
// cópia do servidor para o cliente atualizar o cache em vez de sobrescrever.
package sync

import (
	"context"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de BD, passando o repositório atado à tx.
// Garante que o batch inteiro é aplicado atomicamente.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.UserDataRepository) error) error
}

// UseCase caso de uso do sync em lote.
type UseCase struct {
	tx TxRunner
}

// NewUseCase constrói o caso de uso.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Apply aplica as mudanças do cliente dentro de uma única transação.
// Devolve quantas foram aplicadas e as que perderam para a cópia do servidor.
func (uc *UseCase) Apply(ctx context.Context, userID string, changes []dto.SyncChange) (*dto.SyncResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	resp := &dto.SyncResponse{Success: true}
	err := uc.tx.Run(ctx, func(repo repository.UserDataRepository) error {
		for _, ch := range changes {
			if ch.Store == "" || ch.Key == "" {
				return domain.ErrInvalidInput
			}
			existing, err := repo.Get(ctx, userID, ch.Store, ch.Key)
			if err != nil {
				return err
			}
			// O servidor tem uma versão mais nova: a mudança perde e volta como conflito.
			if existing != nil && !ch.UpdatedAt.After(existing.UpdatedAt) {
				resp.Conflicts = append(resp.Conflicts, dto.SyncChange{
					Store:     ch.Store,
					Key:       ch.Key,
					Data:      existing.Data,
					UpdatedAt: existing.UpdatedAt,
				})
				continue
			}
			if ch.Deleted {
				if _, err := repo.Delete(ctx, userID, ch.Store, ch.Key); err != nil {
					return err
				}
				resp.Applied++
				continue
			}
			rec := &repository.UserDataRecord{
				UserID:    userID,
				Store:     ch.Store,
				Key:       ch.Key,
				Data:      ch.Data,
				UpdatedAt: ch.UpdatedAt,
			}
			if err := repo.Upsert(ctx, rec); err != nil {
				return err
			}
			resp.Applied++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
