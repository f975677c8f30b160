// Package jobs contém o worker assíncrono e as tarefas agendadas.
//
// Hoje existe uma única tarefa: a varredura diária da lixeira, que torna a
// janela de 60 dias uma política de retenção de verdade em vez de um número
// apenas exibido na tela.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/paulocell/paulocell-api/internal/domain/repository"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// Filas e tipos de tarefa.
const (
	QueueDefault = "default"

	TaskTrashPurge = "trash:purge"
)

// TrashPurgePayload parâmetros da varredura da lixeira.
type TrashPurgePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewTrashPurgeTask monta a task asynq da varredura.
func NewTrashPurgeTask(p TrashPurgePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal trash purge payload: %w", err)
	}
	return asynq.NewTask(TaskTrashPurge, payload), nil
}

// NewTrashPurgeHandler devolve o handler que remove itens expirados da lixeira.
func NewTrashPurgeHandler(repo repository.UserDataRepository, log *logger.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p TrashPurgePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("unmarshal trash purge payload: %w", err)
		}
		if p.RetentionDays <= 0 {
			p.RetentionDays = 60
		}
		before := time.Now().UTC().AddDate(0, 0, -p.RetentionDays)
		removed, err := repo.DeleteExpiredTrash(ctx, before)
		if err != nil {
			return fmt.Errorf("varredura da lixeira: %w", err)
		}
		log.Info().
			Int64("removed", removed).
			Time("before", before).
			Msg("varredura da lixeira concluída")
		return nil
	}
}
