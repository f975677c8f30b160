package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/paulocell/paulocell-api/internal/domain"
	"github.com/paulocell/paulocell-api/internal/domain/repository"
)

// Querier abstrai pool e transação do pgx (Exec/Query/QueryRow).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.UserDataRepository = (*UserDataRepo)(nil)

// UserDataRepo implementação de UserDataRepository sobre a tabela user_data (JSONB).
type UserDataRepo struct {
	q Querier
}

// NewUserDataRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewUserDataRepository(q Querier) *UserDataRepo {
	return &UserDataRepo{q: q}
}

// Get obtém um registro pela chave composta; (nil, nil) se ausente.
func (r *UserDataRepo) Get(ctx context.Context, userID, store, key string) (*repository.UserDataRecord, error) {
	query := `
		SELECT id, user_id, store, key, data, updated_at
		FROM user_data WHERE user_id = $1 AND store = $2 AND key = $3`
	var rec repository.UserDataRecord
	err := r.q.QueryRow(ctx, query, userID, store, key).Scan(
		&rec.ID, &rec.UserID, &rec.Store, &rec.Key, &rec.Data, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_data: %w", err)
	}
	return &rec, nil
}

// Upsert insere ou sobrescreve pela chave composta (user_id, store, key).
// Carimba UpdatedAt se o chamador não definiu; gera ID novo em inserções.
func (r *UserDataRepo) Upsert(ctx context.Context, rec *repository.UserDataRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO user_data (id, user_id, store, key, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, store, key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Store, rec.Key, rec.Data, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert user_data: %w", err)
	}
	return nil
}

// Delete remove o registro da chave composta; devolve false se não existia.
func (r *UserDataRepo) Delete(ctx context.Context, userID, store, key string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM user_data WHERE user_id = $1 AND store = $2 AND key = $3`,
		userID, store, key,
	)
	if err != nil {
		return false, fmt.Errorf("delete user_data: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List devolve todos os registros da store, ordenados por chave.
func (r *UserDataRepo) List(ctx context.Context, userID, store string) ([]*repository.UserDataRecord, error) {
	query := `
		SELECT id, user_id, store, key, data, updated_at
		FROM user_data WHERE user_id = $1 AND store = $2 ORDER BY key`
	rows, err := r.q.Query(ctx, query, userID, store)
	if err != nil {
		return nil, fmt.Errorf("list user_data: %w", err)
	}
	defer rows.Close()
	var list []*repository.UserDataRecord
	for rows.Next() {
		var rec repository.UserDataRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Store, &rec.Key, &rec.Data, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user_data: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// DeleteExpiredTrash remove da lixeira (de todos os usuários) itens com deletedAt
// anterior a before. Usado pela varredura diária de retenção.
func (r *UserDataRepo) DeleteExpiredTrash(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM user_data
		 WHERE store = $1 AND (data->>'deletedAt')::timestamptz < $2`,
		domain.StoreTrash, before,
	)
	if err != nil {
		return 0, fmt.Errorf("purge trash: %w", err)
	}
	return tag.RowsAffected(), nil
}
