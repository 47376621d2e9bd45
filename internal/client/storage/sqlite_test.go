package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_SetAndGet(t *testing.T) {
	r := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAuthToken, []byte("abc")))

	v, err := r.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestSQLite_GetMissingReturnsNilNil(t *testing.T) {
	r := openSQLite(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_SetUpserts(t *testing.T) {
	r := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLite_SetManyAndList(t *testing.T) {
	r := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, SetMany(ctx, r, map[string][]byte{
		KeyAuthToken:   []byte("tok"),
		KeyCurrentUser: []byte(`{"username":"alice"}`),
	}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte("tok"), m[KeyAuthToken])
}

func TestSQLite_DeleteIsIdempotentAndClear(t *testing.T) {
	r := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))

	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Clear(ctx))
	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("durable")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), v)
}

func TestSQLite_ErrorsAreWrapped(t *testing.T) {
	r := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, r.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get metadata[k]")
	assert.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	assert.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	assert.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
	_, err = r.List(ctx)
	assert.ErrorContains(t, err, "failed to list metadata")
}

func TestSQLite_SetManyRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").WillReturnError(errors.New("readonly"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).SetMany(context.Background(), map[string][]byte{"k": []byte("v")})
	assert.ErrorContains(t, err, "failed to set metadata[k]: readonly")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_ScanErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte("1")).
		RowError(0, errors.New("bad row"))
	mock.ExpectQuery("SELECT key, value FROM metadata").WillReturnRows(rows)

	_, err = NewSQLiteStore(db).List(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_GetNoRowsViaMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM metadata").WithArgs("x").WillReturnError(sql.ErrNoRows)

	v, err := NewSQLiteStore(db).Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}
