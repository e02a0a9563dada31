// Package memory holds in-process repositories used by the memory backend and by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence"
	"github.com/comfortcurators/portal/pkg/repo"
)

type IdentityRepository struct {
	mu      sync.Mutex
	byID    *repo.SafeMap[uuid.UUID, *identity.Identity]
	byEmail *repo.SafeMap[string, uuid.UUID]
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		byID:    repo.NewSafeMap[uuid.UUID, *identity.Identity](),
		byEmail: repo.NewSafeMap[string, uuid.UUID](),
	}
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*identity.Identity, error) {
	i, ok := r.byID.Get(id)
	if !ok {
		return nil, identity.ErrNotFound
	}
	return i, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	id, ok := r.byEmail.Get(identity.NormalizeEmail(email))
	if !ok {
		return nil, identity.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *IdentityRepository) Create(ctx context.Context, i *identity.Identity) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.byEmail.SetIfAbsent(i.Email(), i.ID()) {
		return nil, identity.ErrEmailTaken
	}
	r.byID.Set(i.ID(), i)
	return i, nil
}

type ProfileRepository struct {
	storage *repo.SafeMap[uuid.UUID, *profile.Profile]
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{storage: repo.NewSafeMap[uuid.UUID, *profile.Profile]()}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.storage.Get(userID)
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	r.storage.Set(p.UserID(), p)
	return nil
}

type memberKey struct {
	orgID  uuid.UUID
	userID uuid.UUID
}

type OrganizationRepository struct {
	orgs    *repo.SafeMap[uuid.UUID, *organization.Organization]
	members *repo.SafeMap[memberKey, organization.Membership]
}

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{
		orgs:    repo.NewSafeMap[uuid.UUID, *organization.Organization](),
		members: repo.NewSafeMap[memberKey, organization.Membership](),
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) (*organization.Organization, error) {
	r.orgs.Set(o.ID(), o)
	return o, nil
}

// AddMember accepts memberships of unknown organizations, mirroring the database which keeps
// no foreign key on org_members.org_id.
func (r *OrganizationRepository) AddMember(ctx context.Context, m organization.Membership) error {
	r.members.Set(memberKey{orgID: m.OrgID, userID: m.UserID}, m)
	return nil
}

func (r *OrganizationRepository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]organization.MembershipWithOrg, error) {
	var records []organization.MembershipWithOrg
	for _, m := range r.members.Values() {
		if m.UserID != userID || m.Status != organization.StatusActive {
			continue
		}
		org, _ := r.orgs.Get(m.OrgID)
		records = append(records, organization.MembershipWithOrg{Membership: m, Org: org})
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Membership, records[j].Membership
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.OrgID.String() < b.OrgID.String()
	})
	return records, nil
}

type SessionRepository struct {
	storage *repo.SafeMap[string, *session.Session]
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{storage: repo.NewSafeMap[string, *session.Session]()}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	r.storage.Set(s.Token(), s)
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	s, ok := r.storage.Get(token)
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	r.storage.Delete(token)
	return nil
}

// NewRepositories returns an empty in-process backend.
func NewRepositories() *persistence.Repositories {
	return &persistence.Repositories{
		Identities:    NewIdentityRepository(),
		Profiles:      NewProfileRepository(),
		Organizations: NewOrganizationRepository(),
		Sessions:      NewSessionRepository(),
	}
}
