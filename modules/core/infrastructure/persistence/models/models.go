package models

import (
	"database/sql"
	"time"
)

type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Profile struct {
	UserID    string
	FullName  sql.NullString
	UpdatedAt time.Time
}

type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MembershipWithOrg is one row of the memberships LEFT JOIN organizations query.
type MembershipWithOrg struct {
	OrgID            string
	UserID           string
	Status           string
	CreatedAt        time.Time
	JoinedOrgID      sql.NullString
	JoinedOrgName    sql.NullString
	JoinedOrgCreated sql.NullTime
}

type Session struct {
	Token     string
	UserID    string
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}
