package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/models"
	"github.com/comfortcurators/portal/pkg/composables"
)

const (
	organizationInsertQuery = `INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`

	memberInsertQuery = `
		INSERT INTO org_members (org_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (org_id, user_id) DO UPDATE SET status = EXCLUDED.status`

	membershipsQuery = `
		SELECT m.org_id, m.user_id, m.status, m.created_at, o.id, o.name, o.created_at
		FROM org_members m
		LEFT JOIN organizations o ON o.id = m.org_id
		WHERE m.user_id = $1 AND m.status = $2
		ORDER BY m.created_at, m.org_id`
)

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) (*organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, organizationInsertQuery, o.ID().String(), o.Name(), o.CreatedAt()); err != nil {
		return nil, errors.Wrap(err, "failed to insert organization")
	}
	return o, nil
}

func (r *OrganizationRepository) AddMember(ctx context.Context, m organization.Membership) error {
	if !m.Status.IsValid() {
		return errors.Errorf("invalid membership status %q", m.Status)
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, memberInsertQuery, m.OrgID.String(), m.UserID.String(), string(m.Status), m.CreatedAt); err != nil {
		return errors.Wrap(err, "failed to insert membership")
	}
	return nil
}

func (r *OrganizationRepository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]organization.MembershipWithOrg, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, membershipsQuery, userID.String(), string(organization.StatusActive))
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var records []organization.MembershipWithOrg
	for rows.Next() {
		var m models.MembershipWithOrg
		if err := rows.Scan(
			&m.OrgID,
			&m.UserID,
			&m.Status,
			&m.CreatedAt,
			&m.JoinedOrgID,
			&m.JoinedOrgName,
			&m.JoinedOrgCreated,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan membership row")
		}
		record, err := toDomainMembershipWithOrg(&m)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map membership")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate membership rows")
	}
	return records, nil
}
