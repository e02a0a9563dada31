package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/models"
	"github.com/comfortcurators/portal/pkg/composables"
)

const (
	profileFindQuery = `SELECT user_id, full_name, updated_at FROM profiles WHERE user_id = $1`

	profileUpsertQuery = `
		INSERT INTO profiles (user_id, full_name, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = EXCLUDED.updated_at`
)

type ProfileRepository struct{}

func NewProfileRepository() profile.Repository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	var m models.Profile
	if err := tx.QueryRow(ctx, profileFindQuery, userID.String()).Scan(&m.UserID, &m.FullName, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query profile")
	}
	return toDomainProfile(&m)
}

func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, profileUpsertQuery, p.UserID().String(), p.FullName(), p.UpdatedAt()); err != nil {
		return errors.Wrap(err, "failed to save profile")
	}
	return nil
}
