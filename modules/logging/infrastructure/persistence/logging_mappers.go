package persistence

import (
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/modules/logging/infrastructure/persistence/models"
)

func toDBAuthenticationLog(log *authenticationlog.AuthenticationLog) *models.AuthenticationLog {
	return &models.AuthenticationLog{
		ID:        log.ID.String(),
		UserID:    log.UserID.String(),
		IP:        log.IP,
		UserAgent: log.UserAgent,
		CreatedAt: log.CreatedAt,
	}
}

func toDomainAuthenticationLog(dbLog *models.AuthenticationLog) (*authenticationlog.AuthenticationLog, error) {
	id, err := uuid.Parse(dbLog.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(dbLog.UserID)
	if err != nil {
		return nil, err
	}
	return &authenticationlog.AuthenticationLog{
		ID:        id,
		UserID:    userID,
		IP:        dbLog.IP,
		UserAgent: dbLog.UserAgent,
		CreatedAt: dbLog.CreatedAt,
	}, nil
}
