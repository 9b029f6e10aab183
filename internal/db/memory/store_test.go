package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/recordkit/internal/db"
)

func TestStore_HashRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.HSet(ctx, "k", map[string]string{"a": "1"}))
	require.NoError(t, s.HSet(ctx, "k", map[string]string{"b": "2"}))

	m, err := s.HGetAll(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	m["a"] = "mutated"
	again, err := s.HGetAll(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1", again["a"], "HGetAll must return a copy")
}

func TestStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m, err := s.HGetAll(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, m)

	ok, err := s.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Del(ctx, "nope"))
}

func TestStore_EmptyHSetCreatesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.HSet(ctx, "k", nil))
	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MultiAndScan(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.HSetMulti(ctx, []db.HashSetItem{
		{Key: "app:rec:site:2", Fields: map[string]string{"id": "2"}},
		{Key: "app:rec:site:1", Fields: map[string]string{"id": "1"}},
		{Key: "app:rec:region:1", Fields: map[string]string{"id": "r"}},
		{Key: "app:type:site", Fields: map[string]string{"slug": "site"}},
	}))

	keys, err := s.Scan(ctx, "app:rec:site:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"app:rec:site:1", "app:rec:site:2"}, keys)

	all, err := s.HGetAllMulti(ctx, append(keys, "app:rec:site:9"))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0]["id"])
	assert.Empty(t, all[2])

	require.NoError(t, s.Del(ctx, "app:rec:site:1"))
	keys, err = s.Scan(ctx, "app:rec:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestStore_ScanBadPattern(t *testing.T) {
	_, err := NewStore().Scan(context.Background(), "[")
	var dbErr *db.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, db.OpScan, dbErr.Op)
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.WaitForReady(ctx, 0))
	s.Close()

	assert.True(t, errors.Is(s.Ping(ctx), db.ErrClosed))
	assert.ErrorIs(t, s.HSet(ctx, "k", map[string]string{"a": "b"}), db.ErrClosed)
	_, err := s.HGetAll(ctx, "k")
	assert.ErrorIs(t, err, db.ErrClosed)
	_, err = s.Scan(ctx, "*")
	assert.ErrorIs(t, err, db.ErrClosed)
	assert.Error(t, s.WaitForReady(ctx, 0))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.HSet(ctx, "shared", map[string]string{"n": "x"})
			_, _ = s.HGetAll(ctx, "shared")
		}()
	}
	wg.Wait()

	ok, err := s.Exists(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
}
