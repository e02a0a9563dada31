package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNew_IssuesUniqueTokens(t *testing.T) {
	t.Parallel()

	params := CreateParams{UserID: uuid.New(), IP: "10.0.0.1", UserAgent: "test", Duration: time.Hour}
	a, err := New(params)
	require.NoError(t, err)
	b, err := New(params)
	require.NoError(t, err)

	require.Len(t, a.Token(), 32)
	require.NotEqual(t, a.Token(), b.Token())
	require.False(t, a.IsExpired(time.Now()))
	require.True(t, a.IsExpired(a.ExpiresAt()))
}
