package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
)

type LogsService struct {
	authRepo authenticationlog.Repository
}

func NewLogsService(authRepo authenticationlog.Repository) *LogsService {
	return &LogsService{
		authRepo: authRepo,
	}
}

// ListAuthenticationLogs returns the newest sign-ins of userID, at most limit of them.
func (s *LogsService) ListAuthenticationLogs(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*authenticationlog.AuthenticationLog, error) {
	return s.authRepo.List(ctx, &authenticationlog.FindParams{UserID: userID, Limit: limit})
}

func (s *LogsService) CreateAuthenticationLog(ctx context.Context, log *authenticationlog.AuthenticationLog) error {
	if log == nil {
		return errors.New("authentication log payload is required")
	}
	if log.UserID == uuid.Nil {
		return errors.New("authentication log requires a user")
	}
	return s.authRepo.Create(ctx, log)
}
