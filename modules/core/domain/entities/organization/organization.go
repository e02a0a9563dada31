package organization

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
}

type Option func(*Organization)

func WithID(id uuid.UUID) Option {
	return func(o *Organization) {
		o.id = id
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(o *Organization) {
		o.createdAt = createdAt
	}
}

func New(name string, opts ...Option) *Organization {
	o := &Organization{
		id:        uuid.New(),
		name:      name,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Organization) ID() uuid.UUID {
	return o.id
}

func (o *Organization) Name() string {
	return o.name
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInvited   Status = "invited"
	StatusSuspended Status = "suspended"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInvited, StatusSuspended:
		return true
	}
	return false
}

type Membership struct {
	OrgID     uuid.UUID
	UserID    uuid.UUID
	Status    Status
	CreatedAt time.Time
}

// MembershipWithOrg is a membership joined with its organization. Org is nil when the
// organization row is missing or not visible to the reader.
type MembershipWithOrg struct {
	Membership Membership
	Org        *Organization
}

type Repository interface {
	Create(ctx context.Context, o *Organization) (*Organization, error)
	AddMember(ctx context.Context, m Membership) error
	// ListMemberships returns the active memberships of userID joined with their organizations,
	// oldest first.
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]MembershipWithOrg, error)
}
