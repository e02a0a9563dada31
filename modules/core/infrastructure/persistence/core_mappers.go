package persistence

import (
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/models"
)

func toDomainIdentity(m *models.Identity) (*identity.Identity, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return identity.New(
		m.Email,
		identity.WithID(id),
		identity.WithPasswordHash(m.PasswordHash),
		identity.WithCreatedAt(m.CreatedAt),
	), nil
}

func toDomainProfile(m *models.Profile) (*profile.Profile, error) {
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}
	var fullName *string
	if m.FullName.Valid {
		fullName = &m.FullName.String
	}
	return profile.New(userID, fullName), nil
}

func toDomainOrganization(m *models.Organization) (*organization.Organization, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return organization.New(m.Name, organization.WithID(id), organization.WithCreatedAt(m.CreatedAt)), nil
}

func toDomainMembershipWithOrg(m *models.MembershipWithOrg) (organization.MembershipWithOrg, error) {
	orgID, err := uuid.Parse(m.OrgID)
	if err != nil {
		return organization.MembershipWithOrg{}, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return organization.MembershipWithOrg{}, err
	}
	record := organization.MembershipWithOrg{
		Membership: organization.Membership{
			OrgID:     orgID,
			UserID:    userID,
			Status:    organization.Status(m.Status),
			CreatedAt: m.CreatedAt,
		},
	}
	if m.JoinedOrgID.Valid {
		org, err := toDomainOrganization(&models.Organization{
			ID:        m.JoinedOrgID.String,
			Name:      m.JoinedOrgName.String,
			CreatedAt: m.JoinedOrgCreated.Time,
		})
		if err != nil {
			return organization.MembershipWithOrg{}, err
		}
		record.Org = org
	}
	return record, nil
}

func toDomainSession(m *models.Session) (*session.Session, error) {
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}
	return session.Restore(m.Token, userID, m.IP, m.UserAgent, m.ExpiresAt, m.CreatedAt), nil
}
