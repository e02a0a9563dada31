package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile holds the optional personal details of an identity.
type Profile struct {
	userID    uuid.UUID
	fullName  *string
	updatedAt time.Time
}

func New(userID uuid.UUID, fullName *string) *Profile {
	return &Profile{
		userID:    userID,
		fullName:  normalizeName(fullName),
		updatedAt: time.Now(),
	}
}

func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (p *Profile) UserID() uuid.UUID {
	return p.userID
}

// FullName is nil when the user never provided one.
func (p *Profile) FullName() *string {
	return p.fullName
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
