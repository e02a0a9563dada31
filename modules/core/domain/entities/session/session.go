package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	token     string
	userID    uuid.UUID
	ip        string
	userAgent string
	expiresAt time.Time
	createdAt time.Time
}

type CreateParams struct {
	UserID    uuid.UUID
	IP        string
	UserAgent string
	Duration  time.Duration
}

// New issues a session with a random 24 byte URL-safe token.
func New(params CreateParams) (*Session, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		token:     base64.RawURLEncoding.EncodeToString(buf),
		userID:    params.UserID,
		ip:        params.IP,
		userAgent: params.UserAgent,
		expiresAt: now.Add(params.Duration),
		createdAt: now,
	}, nil
}

// Restore rebuilds a stored session.
func Restore(token string, userID uuid.UUID, ip, userAgent string, expiresAt, createdAt time.Time) *Session {
	return &Session{
		token:     token,
		userID:    userID,
		ip:        ip,
		userAgent: userAgent,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) UserID() uuid.UUID {
	return s.userID
}

func (s *Session) IP() string {
	return s.ip
}

func (s *Session) UserAgent() string {
	return s.userAgent
}

func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type CreatedEvent struct {
	Session *Session
}

type DeletedEvent struct {
	Session *Session
}
