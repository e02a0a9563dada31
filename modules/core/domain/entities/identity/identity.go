package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Identity is an authenticated account: an email plus the credentials to prove it.
type Identity struct {
	id           uuid.UUID
	email        string
	passwordHash string
	createdAt    time.Time
}

type Option func(*Identity)

func WithID(id uuid.UUID) Option {
	return func(i *Identity) {
		i.id = id
	}
}

func WithPasswordHash(hash string) Option {
	return func(i *Identity) {
		i.passwordHash = hash
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(i *Identity) {
		i.createdAt = createdAt
	}
}

func New(email string, opts ...Option) *Identity {
	i := &Identity{
		id:        uuid.New(),
		email:     NormalizeEmail(email),
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (i *Identity) ID() uuid.UUID {
	return i.id
}

func (i *Identity) Email() string {
	return i.email
}

func (i *Identity) PasswordHash() string {
	return i.passwordHash
}

func (i *Identity) CreatedAt() time.Time {
	return i.createdAt
}

// SetPassword returns a copy carrying the bcrypt hash of password.
func (i *Identity) SetPassword(password string) (*Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := *i
	c.passwordHash = string(hash)
	return &c, nil
}

func (i *Identity) CheckPassword(password string) bool {
	if i.passwordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(i.passwordHash), []byte(password)) == nil
}

// Initials derives avatar initials: the first letter of every space separated word of the
// display name, else the first letter of the email, else "U". The result is upper-cased.
func Initials(displayName *string, email string) string {
	if displayName != nil && strings.TrimSpace(*displayName) != "" {
		var b strings.Builder
		for _, part := range strings.Fields(*displayName) {
			r := []rune(part)
			b.WriteRune(r[0])
		}
		return strings.ToUpper(b.String())
	}
	if email != "" {
		return strings.ToUpper(string([]rune(email)[0]))
	}
	return "U"
}
