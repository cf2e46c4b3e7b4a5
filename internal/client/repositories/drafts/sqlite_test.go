package drafts

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/gnode/gcaeditor/internal/client/client"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/client/models/modelstest"
	"github.com/gnode/gcaeditor/internal/marshal"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func TestSaveLoad_AbstractSurvives(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	a := modelstest.NewAbstractStub().Get()

	changed, err := r.Save(ctx, "conference:c-1", a.Record())
	require.NoError(t, err)
	assert.True(t, changed)

	rec, err := r.Load(ctx, "conference:c-1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	got, err := models.DecodeAbstract(rec)
	require.NoError(t, err)
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("draft changed (-want +got):\n%s", diff)
	}
}

func TestSave_SkipsUnchanged(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	a := modelstest.NewAbstractStub().Get()

	changed, err := r.Save(ctx, "k", a.Record())
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = r.Save(ctx, "k", a.Record())
	require.NoError(t, err)
	assert.False(t, changed, "same payload must not be rewritten")

	a.Title = models.Str("another title")
	changed, err = r.Save(ctx, "k", a.Record())
	require.NoError(t, err)
	assert.True(t, changed)

	rec, err := r.Load(ctx, "k")
	require.NoError(t, err)
	title, _ := rec.Get("title")
	assert.Equal(t, "another title", title)
}

func TestLoad_Absent(t *testing.T) {
	r := setupRepo(t)

	rec, err := r.Load(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestDeleteAndKeys(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		rec := marshal.NewRecord()
		rec.Set("key", k)
		_, err := r.Save(ctx, k, rec)
		require.NoError(t, err)
	}

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	require.NoError(t, r.Delete(ctx, "b"))
	require.NoError(t, r.Delete(ctx, "missing"))

	keys, err = r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestSave_ClosedDB(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewSQLiteRepository(db).Save(context.Background(), "k", marshal.NewRecord())
	assert.Error(t, err)
}
