package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/pkg/constants"
)

func TestAuthenticationLogRepository_List_FiltersByUserAndMapsRows(t *testing.T) {
	userID := uuid.New()
	logID := uuid.New()
	queryCalled := false
	now := time.Now()

	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			queryCalled = true
			require.Contains(t, sql, "FROM authentication_logs")
			require.Equal(t, userID.String(), args[0])
			require.Equal(t, 10, args[1])
			return &stubRows{data: [][]any{
				{logID.String(), userID.String(), "127.0.0.1", "ua", now},
			}}, nil
		},
	}

	ctx := context.WithValue(context.Background(), constants.TxKey, tx)
	repo := NewAuthenticationLogRepository()

	result, err := repo.List(ctx, &authenticationlog.FindParams{UserID: userID, Limit: 10})
	require.NoError(t, err)
	require.True(t, queryCalled)
	require.Len(t, result, 1)
	require.Equal(t, logID, result[0].ID)
	require.Equal(t, userID, result[0].UserID)
	require.Equal(t, now, result[0].CreatedAt)
}

func TestAuthenticationLogRepository_List_DefaultLimit(t *testing.T) {
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Equal(t, defaultListLimit, args[1])
			return &stubRows{}, nil
		},
	}
	ctx := context.WithValue(context.Background(), constants.TxKey, tx)

	result, err := NewAuthenticationLogRepository().List(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestAuthenticationLogRepository_Create_FillsIDAndTimestamp(t *testing.T) {
	userID := uuid.New()
	var execArgs []any
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "INSERT INTO authentication_logs")
			execArgs = args
			return pgconn.CommandTag{}, nil
		},
	}

	ctx := context.WithValue(context.Background(), constants.TxKey, tx)
	repo := NewAuthenticationLogRepository()

	logEntry := &authenticationlog.AuthenticationLog{
		UserID:    userID,
		IP:        "127.0.0.1",
		UserAgent: "ua",
	}
	require.NoError(t, repo.Create(ctx, logEntry))
	require.NotEqual(t, uuid.Nil, logEntry.ID)
	require.NotZero(t, logEntry.CreatedAt)
	require.Len(t, execArgs, 5)
	require.Equal(t, logEntry.ID.String(), execArgs[0])
	require.Equal(t, userID.String(), execArgs[1])
	require.Equal(t, "127.0.0.1", execArgs[2])
	require.IsType(t, time.Time{}, execArgs[4])
}

func TestAuthenticationLogRepository_Create_WrapsDriverErrors(t *testing.T) {
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("connection reset")
		},
	}
	ctx := context.WithValue(context.Background(), constants.TxKey, tx)

	err := NewAuthenticationLogRepository().Create(ctx, &authenticationlog.AuthenticationLog{UserID: uuid.New()})
	require.ErrorContains(t, err, "failed to insert authentication log")
	require.ErrorContains(t, err, "connection reset")
}

type stubTx struct {
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc == nil {
		return pgconn.CommandTag{}, errors.New("exec not implemented")
	}
	return s.execFunc(ctx, sql, args...)
}

func (s *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.queryFunc == nil {
		return nil, errors.New("query not implemented")
	}
	return s.queryFunc(ctx, sql, args...)
}

func (s *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.queryRowFunc == nil {
		return stubRow{scan: func(dest ...any) error { return errors.New("query row not implemented") }}
	}
	return s.queryRowFunc(ctx, sql, args...)
}

type stubRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return errors.New("no current row to scan")
	}
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("destination length %d does not match row length %d", len(dest), len(row))
	}
	for i, target := range dest {
		switch v := target.(type) {
		case *string:
			*v = row[i].(string)
		case *time.Time:
			*v = row[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan target %T", target)
		}
	}
	return nil
}

func (r *stubRows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.idx-1], nil
}

func (r *stubRows) RawValues() [][]byte { return nil }
func (r *stubRows) Err() error          { return r.err }
func (r *stubRows) Close()              {}
func (r *stubRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return errors.New("scan not implemented")
	}
	return r.scan(dest...)
}
