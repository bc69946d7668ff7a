package databases

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "subscribers.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, Subscribers))
	require.NoError(t, Migrate(db, Subscribers))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_UnknownSet(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(db, "nope"))
}
