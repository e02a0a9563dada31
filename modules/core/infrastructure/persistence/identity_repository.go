package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/models"
	"github.com/comfortcurators/portal/pkg/composables"
)

const uniqueViolation = "23505"

const (
	identityFindQuery = `SELECT id, email, password_hash, created_at FROM identities`

	identityInsertQuery = `
		INSERT INTO identities (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
)

type IdentityRepository struct{}

func NewIdentityRepository() identity.Repository {
	return &IdentityRepository{}
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*identity.Identity, error) {
	return r.queryOne(ctx, identityFindQuery+" WHERE id = $1", id.String())
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	return r.queryOne(ctx, identityFindQuery+" WHERE email = $1", identity.NormalizeEmail(email))
}

func (r *IdentityRepository) Create(ctx context.Context, i *identity.Identity) (*identity.Identity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, identityInsertQuery, i.ID().String(), i.Email(), i.PasswordHash(), i.CreatedAt()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, identity.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "failed to insert identity")
	}
	return r.GetByID(ctx, i.ID())
}

func (r *IdentityRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*identity.Identity, error) {
	identities, err := r.queryIdentities(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return nil, identity.ErrNotFound
	}
	return identities[0], nil
}

func (r *IdentityRepository) queryIdentities(ctx context.Context, query string, args ...interface{}) ([]*identity.Identity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var identities []*identity.Identity
	for rows.Next() {
		var m models.Identity
		if err := rows.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan identity row")
		}
		i, err := toDomainIdentity(&m)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map identity")
		}
		identities = append(identities, i)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate identity rows")
	}
	return identities, nil
}
