package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestOpen_CreatesMetadataTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "campus.db")

	repos, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	require.True(t, tableExists(t, repos.DB, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "campus.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestOpen_SessionSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "campus.db")

	repos, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.Credentials.Save(ctx, &models.Credentials{
		Access: "A1", Refresh: "R1", User: &models.Profile{ID: 1, Role: models.RoleStudent},
	}))
	require.NoError(t, repos.Close())

	reopened, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	c, err := reopened.Credentials.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "A1", c.Access)
	require.Equal(t, "R1", c.Refresh)
}

func TestOpen_InMemory(t *testing.T) {
	repos, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Metadata.Set(context.Background(), "k", []byte("v")))
	v, err := repos.Metadata.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}
