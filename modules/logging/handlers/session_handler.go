package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/eventbus"
)

type AuthenticationLogWriter interface {
	CreateAuthenticationLog(ctx context.Context, log *authenticationlog.AuthenticationLog) error
}

type SessionEventsHandler struct {
	pool    *pgxpool.Pool
	service AuthenticationLogWriter
	logger  *logrus.Logger
}

func NewSessionEventsHandler(pool *pgxpool.Pool, service AuthenticationLogWriter, logger *logrus.Logger) *SessionEventsHandler {
	return &SessionEventsHandler{
		pool:    pool,
		service: service,
		logger:  logger,
	}
}

// RegisterSessionEventHandlers writes an authentication log for every session created.
func RegisterSessionEventHandlers(publisher eventbus.EventBus, h *SessionEventsHandler) {
	publisher.Subscribe(h.onSessionCreated)
}

func (h *SessionEventsHandler) onSessionCreated(event session.CreatedEvent) {
	if h.service == nil || event.Session == nil {
		return
	}

	ctx := context.Background()
	if h.pool != nil {
		ctx = composables.WithPool(ctx, h.pool)
	}

	sess := event.Session
	logEntry := authenticationlog.New(sess.UserID(), sess.IP(), sess.UserAgent(), sess.CreatedAt())
	if err := h.service.CreateAuthenticationLog(ctx, logEntry); err != nil {
		h.logger.WithError(err).
			WithField("user_id", event.Session.UserID()).
			Warn("failed to persist authentication log")
	}
}
