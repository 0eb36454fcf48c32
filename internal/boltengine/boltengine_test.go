package boltengine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/pkg/errors"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Open(filepath.Join(t.TempDir(), "bolt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestBoltEngineSetGet(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.Set("a", "1"))

	value, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}

func TestBoltEngineGetMissingKey(t *testing.T) {
	e := newTestEngine(t)

	_, ok, err := e.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBoltEngineRemove(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Remove("a"))

	_, ok, err := e.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBoltEngineRemoveMissingKeyFails(t *testing.T) {
	e := newTestEngine(t)

	err := e.Remove("missing")
	require.Error(t, err)
	require.Equal(t, errors.KeyNotFoundMessage, err.Error())
}

func TestBoltEngineCloneSharesHandle(t *testing.T) {
	e := newTestEngine(t)

	clone := e.Clone()
	require.NoError(t, e.Set("a", "1"))

	value, ok, err := clone.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}
