package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/memory"
)

var errBackend = errors.New("backend unavailable")

type failingOrgRepo struct {
	organization.Repository
}

func (failingOrgRepo) ListMemberships(context.Context, uuid.UUID) ([]organization.MembershipWithOrg, error) {
	return nil, errBackend
}

type failingProfileRepo struct {
	profile.Repository
}

func (failingProfileRepo) GetByUserID(context.Context, uuid.UUID) (*profile.Profile, error) {
	return nil, errBackend
}

func TestOrgContextService_Load(t *testing.T) {
	ctx := context.Background()
	orgs := memory.NewOrganizationRepository()
	profiles := memory.NewProfileRepository()
	u := identity.New("owner@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := orgs.Create(ctx, organization.New("Seaside Villas"))
	require.NoError(t, err)
	second, err := orgs.Create(ctx, organization.New("Hill Cottages"))
	require.NoError(t, err)
	require.NoError(t, orgs.AddMember(ctx, organization.Membership{
		OrgID: second.ID(), UserID: u.ID(), Status: organization.StatusActive, CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, orgs.AddMember(ctx, organization.Membership{
		OrgID: first.ID(), UserID: u.ID(), Status: organization.StatusActive, CreatedAt: base,
	}))
	// Membership of an organization the reader cannot see.
	require.NoError(t, orgs.AddMember(ctx, organization.Membership{
		OrgID: uuid.New(), UserID: u.ID(), Status: organization.StatusActive, CreatedAt: base.Add(2 * time.Hour),
	}))
	require.NoError(t, orgs.AddMember(ctx, organization.Membership{
		OrgID: uuid.New(), UserID: u.ID(), Status: organization.StatusInvited, CreatedAt: base,
	}))
	name := "Asha Rao"
	require.NoError(t, profiles.Save(ctx, profile.New(u.ID(), &name)))

	oc := NewOrgContextService(orgs, profiles).Load(ctx, u)
	require.True(t, oc.HasOrganizations())
	require.Len(t, oc.Organizations, 2)
	require.Equal(t, first.ID(), oc.Organizations[0].ID())
	require.Equal(t, second.ID(), oc.Organizations[1].ID())
	require.Equal(t, "Asha Rao", oc.HeaderLabel(u.Email()))
	require.Equal(t, "AR", oc.Initials(u.Email()))
}

func TestOrgContextService_LoadWithoutProfile(t *testing.T) {
	u := identity.New("solo@example.com")
	oc := NewOrgContextService(memory.NewOrganizationRepository(), memory.NewProfileRepository()).Load(context.Background(), u)
	require.False(t, oc.HasOrganizations())
	require.Nil(t, oc.DisplayName)
	require.Equal(t, "solo@example.com", oc.HeaderLabel(u.Email()))
	require.Equal(t, "Account", oc.MenuLabel("Account"))
	require.Equal(t, "S", oc.Initials(u.Email()))
}

func TestOrgContextService_LoadDegradesOnFailure(t *testing.T) {
	u := identity.New("x@example.com")
	oc := NewOrgContextService(failingOrgRepo{}, failingProfileRepo{}).Load(context.Background(), u)
	require.False(t, oc.HasOrganizations())
	require.Nil(t, oc.DisplayName)
}
