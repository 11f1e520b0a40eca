package db_test

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"feedsng/internal/db"
)

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	database, err := db.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer database.Close()
	require.Equal(t, db.SQLite, database.Dialect)

	for _, table := range []string{"feeds", "feed_items", "feed_groups", "feed_group_members", "user_feeds", "user_feed_items"} {
		var name string
		err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	first, err := db.Open("sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open("sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := db.Open("mysql", "whatever")
	require.Error(t, err)
}

// Pragmas must live in the DSN: PRAGMA statements only affect the connection
// they run on, and concurrent refreshes need busy_timeout on every connection.
func TestBuildDSN_AllPragmasInDSN(t *testing.T) {
	dsn := db.BuildDSN("mydb.sqlite")
	require.Contains(t, dsn, "file:mydb.sqlite?")

	decodedDSN, err := url.QueryUnescape(dsn)
	require.NoError(t, err)
	for _, pragma := range []string{"journal_mode(WAL)", "foreign_keys(ON)", "busy_timeout(30000)", "synchronous(NORMAL)"} {
		require.Contains(t, decodedDSN, pragma)
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT id FROM feeds WHERE url = ? AND name <> '?' AND id > ?"
	require.Equal(t, query, db.SQLite.Rebind(query))
	require.Equal(t, "SELECT id FROM feeds WHERE url = $1 AND name <> '?' AND id > $2", db.Postgres.Rebind(query))
}
