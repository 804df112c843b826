package postgresql_test

import (
	"context"
	"testing"

	"imagehub/internal/storage/postgresql"
	"imagehub/internal/storage/postgresql/pgtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := pgtest.DSN(t)

	storage, err := postgresql.New(ctx, dsn)
	require.NoError(t, err)
	defer storage.Stop()

	require.NoError(t, storage.Ping(ctx))

	for _, table := range []string{"folders", "images"} {
		var exists bool
		err := storage.Pool().QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	t.Run("migrations are idempotent", func(t *testing.T) {
		assert.NoError(t, storage.Migrate(ctx))
	})
}

func TestNew_BadDSN(t *testing.T) {
	_, err := postgresql.New(context.Background(), "not a dsn")
	assert.Error(t, err)
}
