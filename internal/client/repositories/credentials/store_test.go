package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

var ignoreRawUser = cmpopts.IgnoreFields(models.Credentials{}, "RawUser")

func sample() *models.Credentials {
	return &models.Credentials{
		Access:  "A1",
		Refresh: "R1",
		User:    &models.Profile{ID: 1, Email: "a@b.com", Role: models.RoleAdmin},
	}
}

func TestLoad_Empty_ReturnsErrNoSession(t *testing.T) {
	s := NewStore(setupDB(t))

	c, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
	require.Nil(t, c)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sample(), got, ignoreRawUser))
}

func TestSave_UsesUserKeyAndJSONLayout(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))

	raw, err := metadata.NewSQLiteRepository(db).Get(ctx, common.CredentialsKey)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.JSONEq(t, `"A1"`, string(m["access"]))
	assert.JSONEq(t, `"R1"`, string(m["refresh"]))
	assert.Contains(t, string(m["user"]), `"role":"ADMIN"`)
}

func TestUpdateAccess_KeepsUserAsReceived(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	user := `{"id":7,"email":"a@b.com","role":"STUDENT","faculty_details":{"id":2,"name":"Physics"},"date_joined":"2024-09-01T08:00:00Z"}`
	var c models.Credentials
	require.NoError(t, json.Unmarshal([]byte(`{"access":"A1","refresh":"R1","user":`+user+`}`), &c))
	require.NoError(t, s.Save(ctx, &c))

	require.NoError(t, s.UpdateAccess(ctx, "A2"))

	raw, err := metadata.NewSQLiteRepository(db).Get(ctx, common.CredentialsKey)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.JSONEq(t, `"A2"`, string(m["access"]))
	assert.JSONEq(t, user, string(m["user"]))
}

func TestSave_Nil_Rejected(t *testing.T) {
	s := NewStore(setupDB(t))
	require.ErrorIs(t, s.Save(context.Background(), nil), common.ErrorIncorrectMetadata)
}

func TestUpdateAccess_ReplacesOnlyAccessToken(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sample()))

	require.NoError(t, s.UpdateAccess(ctx, "A2"))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	want := sample()
	want.Access = "A2"
	assert.Empty(t, cmp.Diff(want, got, ignoreRawUser))
}

func TestUpdateAccess_NoRecord_ReturnsErrNoSession(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	require.ErrorIs(t, s.UpdateAccess(ctx, "A2"), ErrNoSession)

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession, "UpdateAccess must not create a record")
}

func TestClear_IsIdempotent(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sample()))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestClear_KeepsOtherKeys(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, common.PreferredLanguageKey, []byte("ru")))
	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Clear(ctx))

	v, err := repo.Get(ctx, common.PreferredLanguageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("ru"), v)
}

func TestLoad_CorruptRecord(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, common.CredentialsKey, []byte("{not json")))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestConcurrentWriters_LastWriteWins(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sample()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.UpdateAccess(ctx, fmt.Sprintf("A-%d", i))
			_, _ = s.Load(ctx)
		}(i)
	}
	wg.Wait()

	require.NoError(t, s.UpdateAccess(ctx, "final"))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Access)
	assert.Equal(t, "R1", got.Refresh)
}
