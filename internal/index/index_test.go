package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/pkg/logger"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(context.Background(), &Config{DataDir: t.TempDir(), Logger: logger.Nop()})
	require.NoError(t, err)
	return idx
}

func TestIndexGetMissing(t *testing.T) {
	idx := newTestIndex(t)

	pos, ok := idx.Get("missing")
	require.False(t, ok)
	require.Equal(t, CommandPos{}, pos)
}

func TestIndexSetThenGet(t *testing.T) {
	idx := newTestIndex(t)

	prev, existed := idx.Set("a", CommandPos{Gen: 1, Offset: 0, Len: 10})
	require.False(t, existed)
	require.Equal(t, CommandPos{}, prev)

	pos, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, CommandPos{Gen: 1, Offset: 0, Len: 10}, pos)
	require.Equal(t, 1, idx.Len())
}

func TestIndexSetOverwriteReturnsPrevious(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("a", CommandPos{Gen: 1, Offset: 0, Len: 10})
	prev, existed := idx.Set("a", CommandPos{Gen: 2, Offset: 5, Len: 20})
	require.True(t, existed)
	require.Equal(t, CommandPos{Gen: 1, Offset: 0, Len: 10}, prev)

	pos, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, CommandPos{Gen: 2, Offset: 5, Len: 20}, pos)
}

func TestIndexDelete(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("a", CommandPos{Gen: 1, Offset: 0, Len: 10})

	prev, existed := idx.Delete("a")
	require.True(t, existed)
	require.Equal(t, CommandPos{Gen: 1, Offset: 0, Len: 10}, prev)

	_, ok := idx.Get("a")
	require.False(t, ok)

	_, existed = idx.Delete("a")
	require.False(t, existed)
}

func TestIndexIterAscendingOrder(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("c", CommandPos{Gen: 1, Offset: 0, Len: 1})
	idx.Set("a", CommandPos{Gen: 1, Offset: 1, Len: 1})
	idx.Set("b", CommandPos{Gen: 1, Offset: 2, Len: 1})

	var keys []string
	idx.Iter(func(key string, pos CommandPos) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestIndexIterStopsEarly(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("a", CommandPos{Gen: 1, Offset: 0, Len: 1})
	idx.Set("b", CommandPos{Gen: 1, Offset: 1, Len: 1})
	idx.Set("c", CommandPos{Gen: 1, Offset: 2, Len: 1})

	var keys []string
	idx.Iter(func(key string, pos CommandPos) bool {
		keys = append(keys, key)
		return key != "b"
	})
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestIndexCloseThenErr(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}

func TestNewRejectsMissingConfig(t *testing.T) {
	_, err := New(context.Background(), &Config{Logger: logger.Nop()})
	require.Error(t, err)
}
