package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/modules/logging/infrastructure/persistence/models"
	"github.com/comfortcurators/portal/pkg/composables"
)

const (
	defaultListLimit = 50

	authLogListQuery = `
		SELECT id, user_id, ip, user_agent, created_at
		FROM authentication_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	authLogInsertQuery = `
		INSERT INTO authentication_logs (id, user_id, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5)`
)

type AuthenticationLogRepository struct{}

func NewAuthenticationLogRepository() authenticationlog.Repository {
	return &AuthenticationLogRepository{}
}

// List returns the newest entries of one user.
func (r *AuthenticationLogRepository) List(
	ctx context.Context,
	params *authenticationlog.FindParams,
) ([]*authenticationlog.AuthenticationLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	userID, limit := listArgs(params)
	rows, err := tx.Query(ctx, authLogListQuery, userID.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query authentication logs")
	}
	defer rows.Close()

	var results []*authenticationlog.AuthenticationLog
	for rows.Next() {
		var row models.AuthenticationLog
		if err := rows.Scan(&row.ID, &row.UserID, &row.IP, &row.UserAgent, &row.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan authentication log")
		}
		log, err := toDomainAuthenticationLog(&row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map authentication log")
		}
		results = append(results, log)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read authentication logs")
	}
	return results, nil
}

func (r *AuthenticationLogRepository) Create(ctx context.Context, log *authenticationlog.AuthenticationLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	prepareForInsert(log)
	dbRow := toDBAuthenticationLog(log)
	if _, err := tx.Exec(
		ctx,
		authLogInsertQuery,
		dbRow.ID,
		dbRow.UserID,
		dbRow.IP,
		dbRow.UserAgent,
		dbRow.CreatedAt,
	); err != nil {
		return errors.Wrap(err, "failed to insert authentication log")
	}
	return nil
}

func prepareForInsert(log *authenticationlog.AuthenticationLog) {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
}

func listArgs(params *authenticationlog.FindParams) (uuid.UUID, int) {
	if params == nil {
		return uuid.Nil, defaultListLimit
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return params.UserID, limit
}
