package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/models"
	"github.com/comfortcurators/portal/pkg/composables"
)

const (
	sessionFindQuery = `SELECT token, user_id, ip, user_agent, expires_at, created_at FROM sessions WHERE token = $1`

	sessionInsertQuery = `
		INSERT INTO sessions (token, user_id, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	sessionDeleteQuery = `DELETE FROM sessions WHERE token = $1`
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(
		ctx,
		sessionInsertQuery,
		s.Token(),
		s.UserID().String(),
		s.IP(),
		s.UserAgent(),
		s.ExpiresAt(),
		s.CreatedAt(),
	); err != nil {
		return errors.Wrap(err, "failed to insert session")
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	var m models.Session
	if err := tx.QueryRow(ctx, sessionFindQuery, token).Scan(
		&m.Token,
		&m.UserID,
		&m.IP,
		&m.UserAgent,
		&m.ExpiresAt,
		&m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query session")
	}
	return toDomainSession(&m)
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, sessionDeleteQuery, token); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
