package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := InitDB(":memory:")
	require.NoError(t, err)
	// One connection, or the pool would hand out fresh empty databases.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}
