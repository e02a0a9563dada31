package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/pkg/eventbus"
)

type stubLogsService struct {
	created []*authenticationlog.AuthenticationLog
	err     error
}

func (s *stubLogsService) CreateAuthenticationLog(ctx context.Context, log *authenticationlog.AuthenticationLog) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, log)
	return nil
}

func TestSessionEventsHandler_WritesAuthenticationLog(t *testing.T) {
	publisher := eventbus.NewEventPublisher(nil)
	stubSvc := &stubLogsService{}
	RegisterSessionEventHandlers(publisher, NewSessionEventsHandler(nil, stubSvc, logrus.New()))

	userID := uuid.New()
	createdAt := time.Now()
	sess := session.Restore("token", userID, "10.0.0.1", "agent", createdAt.Add(time.Hour), createdAt)
	publisher.Publish(session.CreatedEvent{Session: sess})

	require.Len(t, stubSvc.created, 1)
	created := stubSvc.created[0]
	require.Equal(t, userID, created.UserID)
	require.Equal(t, "10.0.0.1", created.IP)
	require.Equal(t, "agent", created.UserAgent)
	require.Equal(t, createdAt, created.CreatedAt)
}

func TestSessionEventsHandler_LogsFailures(t *testing.T) {
	publisher := eventbus.NewEventPublisher(nil)
	logger, hook := test.NewNullLogger()
	stubSvc := &stubLogsService{err: errors.New("db down")}
	RegisterSessionEventHandlers(publisher, NewSessionEventsHandler(nil, stubSvc, logger))

	sess := session.Restore("token", uuid.New(), "", "", time.Now().Add(time.Hour), time.Now())
	publisher.Publish(session.CreatedEvent{Session: sess})

	require.Empty(t, stubSvc.created)
	require.NotNil(t, hook.LastEntry())
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, "failed to persist authentication log", hook.LastEntry().Message)
}
