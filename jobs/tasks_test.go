package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulocell/paulocell-api/internal/domain/repository"
	"github.com/paulocell/paulocell-api/jobs"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// purgeRepo captura o corte temporal passado para a varredura.
type purgeRepo struct {
	before  time.Time
	removed int64
}

func (r *purgeRepo) Get(context.Context, string, string, string) (*repository.UserDataRecord, error) {
	return nil, nil
}
func (r *purgeRepo) Upsert(context.Context, *repository.UserDataRecord) error { return nil }
func (r *purgeRepo) Delete(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (r *purgeRepo) List(context.Context, string, string) ([]*repository.UserDataRecord, error) {
	return nil, nil
}
func (r *purgeRepo) DeleteExpiredTrash(_ context.Context, before time.Time) (int64, error) {
	r.before = before
	return r.removed, nil
}

func TestTrashPurgeHandler_CorteRespeitaARetencao(t *testing.T) {
	repo := &purgeRepo{removed: 3}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	handler := jobs.NewTrashPurgeHandler(repo, log)

	task, err := jobs.NewTrashPurgeTask(jobs.TrashPurgePayload{RetentionDays: 60})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))

	esperado := time.Now().UTC().AddDate(0, 0, -60)
	assert.WithinDuration(t, esperado, repo.before, 5*time.Second,
		"o corte da varredura é hoje menos a janela de retenção")
}

func TestTrashPurgeHandler_RetencaoInvalidaCaiNoDefault(t *testing.T) {
	repo := &purgeRepo{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	handler := jobs.NewTrashPurgeHandler(repo, log)

	task, err := jobs.NewTrashPurgeTask(jobs.TrashPurgePayload{RetentionDays: 0})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))

	esperado := time.Now().UTC().AddDate(0, 0, -60)
	assert.WithinDuration(t, esperado, repo.before, 5*time.Second,
		"payload sem retenção usa os 60 dias padrão")
}
