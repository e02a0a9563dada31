package application

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestUnionFS_MergesDirectories(t *testing.T) {
	t.Parallel()

	core := fstest.MapFS{
		"00001_identities.sql": {Data: []byte("-- core")},
		"00002_orgs.sql":       {Data: []byte("-- core")},
	}
	logging := fstest.MapFS{
		"00100_authentication_logs.sql": {Data: []byte("-- logging")},
	}
	u := unionFS{logging, core}

	matches, err := fs.Glob(u, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_identities.sql", "00002_orgs.sql", "00100_authentication_logs.sql"}, matches)

	data, err := fs.ReadFile(u, "00100_authentication_logs.sql")
	require.NoError(t, err)
	require.Equal(t, "-- logging", string(data))

	info, err := fs.Stat(u, ".")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = u.Open("missing.sql")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMigrationManager_RequiresPool(t *testing.T) {
	t.Parallel()

	m := NewMigrationManager(nil, logrus.New())
	require.ErrorIs(t, m.Run(context.Background()), ErrNoDatabase)
	require.ErrorIs(t, m.Status(context.Background()), ErrNoDatabase)
}
