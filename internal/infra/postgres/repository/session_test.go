package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *[]byte:
		*d = r.data
	case *int:
		*d = 1
	}
	return nil
}

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	row   fakeRow
	execs []execCall
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported by fake")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

func TestSessionRepository_GetNotFound(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.Get(context.Background(), 1)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepository_GetDecodes(t *testing.T) {
	t.Parallel()

	s := session.New(9, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	nav, err := navigation.Apply(s.Nav, navigation.SelectBook("b2"))
	require.NoError(t, err)
	s.Nav = nav
	data, err := session.Marshal(s)
	require.NoError(t, err)

	repo := NewSessionRepository(&fakeDB{row: fakeRow{data: data}})

	got, err := repo.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSessionRepository_GetCorruptRow(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(&fakeDB{row: fakeRow{data: []byte("not json")}})

	_, err := repo.Get(context.Background(), 9)
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepository_Save(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}
	repo := NewSessionRepository(db)
	s := session.New(3, time.Now().UTC())

	require.NoError(t, repo.Save(context.Background(), s))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0].sql, "ON CONFLICT (chat_id)")
	require.Len(t, db.execs[0].args, 3)
	assert.Equal(t, int64(3), db.execs[0].args[0])

	stored, err := session.Unmarshal(db.execs[0].args[1].([]byte))
	require.NoError(t, err)
	assert.Equal(t, navigation.ViewHome, stored.View())
}

func TestSessionRepository_ExecErrorWrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("conn closed")
	repo := NewSessionRepository(&fakeDB{err: cause})

	err := repo.Delete(context.Background(), 3)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "delete session")
}

func TestSessionRepository_Ping(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewSessionRepository(&fakeDB{}).Ping(context.Background()))
}
