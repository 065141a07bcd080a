package db

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Source(t *testing.T) {
	drv, err := source.Open("file://migration")
	require.NoError(t, err)
	t.Cleanup(func() { _ = drv.Close() })

	var ups strings.Builder
	versions := 0
	v, err := drv.First()
	for err == nil {
		versions++

		up, _, upErr := drv.ReadUp(v)
		require.NoError(t, upErr, "version %d has no up migration", v)
		body, readErr := io.ReadAll(up)
		require.NoError(t, readErr)
		_ = up.Close()
		ups.Write(body)

		down, _, downErr := drv.ReadDown(v)
		require.NoError(t, downErr, "version %d has no down migration", v)
		_ = down.Close()

		v, err = drv.Next(v)
	}
	require.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 2, versions)

	schema := ups.String()
	assert.Equal(t, 1, strings.Count(schema, "CREATE TABLE IF NOT EXISTS users"))
	assert.Equal(t, 1, strings.Count(schema, "CREATE TABLE IF NOT EXISTS refresh_tokens"))
}

func TestMigrations_OneFilePerVersionAndDirection(t *testing.T) {
	entries, err := os.ReadDir("migration")
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, e := range entries {
		name := e.Name()
		version, _, ok := strings.Cut(name, "_")
		require.True(t, ok, name)

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			seen[version+".up"]++
		case strings.HasSuffix(name, ".down.sql"):
			seen[version+".down"]++
		}
	}

	require.NotEmpty(t, seen)
	for k, n := range seen {
		assert.Equal(t, 1, n, k)
	}
}
