package models

import "time"

type AuthenticationLog struct {
	ID        string
	UserID    string
	IP        string
	UserAgent string
	CreatedAt time.Time
}
