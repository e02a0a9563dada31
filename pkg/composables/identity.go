package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/pkg/constants"
)

var (
	ErrNoIdentityFound = errors.New("no identity found in context")
	ErrNoSessionFound  = errors.New("no session found in context")
)

func WithIdentity(ctx context.Context, i *identity.Identity) context.Context {
	return context.WithValue(ctx, constants.IdentityKey, i)
}

// UseIdentity returns the signed-in identity of the request.
func UseIdentity(ctx context.Context) (*identity.Identity, error) {
	i, ok := ctx.Value(constants.IdentityKey).(*identity.Identity)
	if !ok || i == nil {
		return nil, ErrNoIdentityFound
	}
	return i, nil
}

// UseIdentityID returns the id of the signed-in identity, or uuid.Nil for anonymous requests.
func UseIdentityID(ctx context.Context) uuid.UUID {
	if i, err := UseIdentity(ctx); err == nil {
		return i.ID()
	}
	return uuid.Nil
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, s)
}

func UseSession(ctx context.Context) (*session.Session, error) {
	s, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSessionFound
	}
	return s, nil
}
