package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("identity not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	Create(ctx context.Context, i *Identity) (*Identity, error)
}
