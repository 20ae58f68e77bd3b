package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aperture/internal/store"
)

// memBackend is an in-memory Backend with injectable failures.
type memBackend struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (m *memBackend) Read(context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.data, nil
}

func (m *memBackend) Write(_ context.Context, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

func TestLoad_MissingYieldsEmpty(t *testing.T) {
	s := NewStore(&memBackend{}, nil)
	m := s.Load(context.Background())
	assert.Empty(t, m)
	assert.Equal(t, 0, s.CompletedCount())
}

func TestLoad_CorruptYieldsEmpty(t *testing.T) {
	s := NewStore(&memBackend{data: []byte("{not json")}, nil)
	assert.Empty(t, s.Load(context.Background()))
}

func TestLoad_ReadErrorYieldsEmpty(t *testing.T) {
	s := NewStore(&memBackend{readErr: errors.New("disk gone")}, nil)
	assert.Empty(t, s.Load(context.Background()))
}

func TestLoad_NullDocumentYieldsEmpty(t *testing.T) {
	s := NewStore(&memBackend{data: []byte("null")}, nil)
	m := s.Load(context.Background())
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestLoad_Idempotent(t *testing.T) {
	b := &memBackend{data: []byte(`{"rule-of-thirds":{"completed":true,"rating":4},"leading-lines":{"completed":false,"rating":null}}`)}
	s := NewStore(b, nil)
	ctx := context.Background()

	first := s.Load(ctx)
	second := s.Load(ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.CompletedCount())
}

func TestRecordCompletion_PersistsWholeMap(t *testing.T) {
	b := &memBackend{}
	s := NewStore(b, nil)
	ctx := context.Background()
	s.Load(ctx)

	require.NoError(t, s.RecordCompletion(ctx, "rule-of-thirds", 4))
	require.NoError(t, s.RecordCompletion(ctx, "leading-lines", 3))
	assert.Equal(t, 2, b.writes)
	assert.JSONEq(t, `{"rule-of-thirds":{"completed":true,"rating":4},"leading-lines":{"completed":true,"rating":3}}`, string(b.data))

	// A fresh store over the same backend sees identical state.
	reloaded := NewStore(b, nil).Load(ctx)
	assert.Equal(t, s.Snapshot(), reloaded)
}

func TestRecordCompletion_OverwritesRating(t *testing.T) {
	s := NewStore(&memBackend{}, nil)
	ctx := context.Background()
	s.Load(ctx)

	require.NoError(t, s.RecordCompletion(ctx, "a", 3))
	require.NoError(t, s.RecordCompletion(ctx, "a", 5))

	r, ok := s.Get("a")
	require.True(t, ok)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 5, *r.Rating)
	assert.Equal(t, 1, s.CompletedCount())
}

func TestRecordCompletion_WriteFailureKeepsMemoryAndPersisted(t *testing.T) {
	b := &memBackend{data: []byte(`{"a":{"completed":true,"rating":3}}`)}
	s := NewStore(b, nil)
	ctx := context.Background()
	s.Load(ctx)

	b.writeErr = errors.New("read-only filesystem")
	err := s.RecordCompletion(ctx, "b", 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))

	assert.Equal(t, 2, s.CompletedCount(), "memory keeps the new record")
	assert.JSONEq(t, `{"a":{"completed":true,"rating":3}}`, string(b.data), "persisted document untouched")
}

func TestReset(t *testing.T) {
	b := &memBackend{}
	s := NewStore(b, nil)
	ctx := context.Background()
	s.Load(ctx)
	require.NoError(t, s.RecordCompletion(ctx, "a", 3))

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 0, s.CompletedCount())
	assert.JSONEq(t, `{}`, string(b.data))
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := NewStore(&memBackend{}, nil)
	ctx := context.Background()
	s.Load(ctx)
	require.NoError(t, s.RecordCompletion(ctx, "a", 3))

	snap := s.Snapshot()
	*snap["a"].Rating = 1
	delete(snap, "a")

	r, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, *r.Rating)
}

func TestMap_AllCompleted(t *testing.T) {
	three := 3
	m := Map{"a": {Completed: true, Rating: &three}, "b": {Completed: false}}
	assert.False(t, m.AllCompleted([]string{"a", "b"}))
	assert.True(t, m.AllCompleted([]string{"a"}))
	assert.Equal(t, 1, m.CompletedCount())
	assert.Equal(t, 1, m.CompletedAmong([]string{"a", "b", "c"}))
	assert.Equal(t, 0, m.CompletedAmong([]string{"b"}))
}

func TestStore_CompletedCountScopedToLessons(t *testing.T) {
	ctx := context.Background()
	b := &memBackend{data: []byte(`{"a":{"completed":true,"rating":4},"retired":{"completed":true,"rating":5}}`)}

	raw := NewStore(b, nil)
	raw.Load(ctx)
	assert.Equal(t, 2, raw.CompletedCount())

	s := NewStore(b, nil, WithLessons([]string{"a", "b"}))
	s.Load(ctx)
	assert.Equal(t, 1, s.CompletedCount(), "ids outside the lessons are not counted")

	require.NoError(t, s.RecordCompletion(ctx, "b", 3))
	assert.Equal(t, 2, s.CompletedCount())
	assert.Contains(t, string(b.data), `"retired"`, "records for other ids are kept")
}

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	b := NewFileBackend(path)
	ctx := context.Background()

	data, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	s := NewStore(b, nil)
	s.Load(ctx)
	require.NoError(t, s.RecordCompletion(ctx, "rule-of-thirds", 5))

	reloaded := NewStore(NewFileBackend(path), nil).Load(ctx)
	require.Contains(t, reloaded, "rule-of-thirds")
	assert.Equal(t, 5, *reloaded["rule-of-thirds"].Rating)
}

func TestKVBackend_RoundTrip(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	b := NewKVBackend(st.KVRepo(), "")
	data, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	s := NewStore(b, nil)
	s.Load(ctx)
	require.NoError(t, s.RecordCompletion(ctx, "leading-lines", 4))

	raw, err := st.KVRepo().Get(ctx, DefaultNamespace)
	require.NoError(t, err)
	assert.JSONEq(t, `{"leading-lines":{"completed":true,"rating":4}}`, string(raw))
}

func TestOpenBackend(t *testing.T) {
	_, err := OpenBackend("json", nil, "")
	assert.Error(t, err)

	_, err = OpenBackend("sqlite", nil, "")
	assert.Error(t, err)

	_, err = OpenBackend("redis", nil, "x")
	assert.Error(t, err)

	b, err := OpenBackend("JSON", nil, filepath.Join(t.TempDir(), "p.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)
}
