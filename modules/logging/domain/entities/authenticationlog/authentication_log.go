package authenticationlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthenticationLog records one issued session.
type AuthenticationLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// New records a sign-in of userID from the given client at the given time.
func New(userID uuid.UUID, ip, userAgent string, at time.Time) *AuthenticationLog {
	return &AuthenticationLog{
		ID:        uuid.New(),
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: at,
	}
}

type FindParams struct {
	UserID uuid.UUID
	Limit  int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*AuthenticationLog, error)
	Create(ctx context.Context, log *AuthenticationLog) error
}
