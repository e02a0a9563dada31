// Package memory keeps authentication logs in process for the memory backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
)

const defaultListLimit = 50

type AuthenticationLogRepository struct {
	mu   sync.RWMutex
	logs []authenticationlog.AuthenticationLog
}

func NewAuthenticationLogRepository() *AuthenticationLogRepository {
	return &AuthenticationLogRepository{}
}

func (r *AuthenticationLogRepository) List(
	ctx context.Context,
	params *authenticationlog.FindParams,
) ([]*authenticationlog.AuthenticationLog, error) {
	limit := defaultListLimit
	var userID uuid.UUID
	if params != nil {
		userID = params.UserID
		if params.Limit > 0 {
			limit = params.Limit
		}
	}

	r.mu.RLock()
	var results []*authenticationlog.AuthenticationLog
	for i := range r.logs {
		if r.logs[i].UserID == userID {
			log := r.logs[i]
			results = append(results, &log)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *AuthenticationLogRepository) Create(ctx context.Context, log *authenticationlog.AuthenticationLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.logs = append(r.logs, *log)
	r.mu.Unlock()
	return nil
}
