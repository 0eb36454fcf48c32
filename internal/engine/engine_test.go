package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/logger"
	"github.com/wealrain/ignitekv/pkg/options"
)

func newTestEngine(t *testing.T, threshold uint64) *Engine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.CompactionThreshold = threshold

	e, err := New(context.Background(), &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = e.CloseWriter()
		_ = e.Close()
	})
	return e
}

func TestEngineSetGet(t *testing.T) {
	e := newTestEngine(t, 0)

	require.NoError(t, e.Set("a", "1"))

	value, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}

func TestEngineGetMissingKeyReturnsNilNotError(t *testing.T) {
	e := newTestEngine(t, 0)

	_, ok, err := e.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineSetOverwrite(t *testing.T) {
	e := newTestEngine(t, 0)

	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Set("a", "2"))

	value, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", value)
}

func TestEngineRemove(t *testing.T) {
	e := newTestEngine(t, 0)

	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Remove("a"))

	_, ok, err := e.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineRemoveMissingKeyFails(t *testing.T) {
	e := newTestEngine(t, 0)

	err := e.Remove("missing")
	require.Error(t, err)
	require.Equal(t, errors.KeyNotFoundMessage, err.Error())
}

func TestEngineClosedRejectsOperations(t *testing.T) {
	e := newTestEngine(t, 0)
	require.NoError(t, e.Close())

	_, _, err := e.Get("a")
	require.ErrorIs(t, err, ErrEngineClosed)

	err = e.Set("a", "1")
	require.ErrorIs(t, err, ErrEngineClosed)

	err = e.Remove("a")
	require.ErrorIs(t, err, ErrEngineClosed)
}

func TestEngineReopenRecoversFromLog(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()

	e1, err := New(context.Background(), &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	require.NoError(t, e1.Set("a", "1"))
	require.NoError(t, e1.Set("b", "2"))
	require.NoError(t, e1.Remove("b"))
	require.NoError(t, e1.CloseWriter())
	require.NoError(t, e1.Close())

	e2, err := New(context.Background(), &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	defer func() {
		_ = e2.CloseWriter()
		_ = e2.Close()
	}()

	value, ok, err := e2.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)

	_, ok, err = e2.Get("b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineCompactionTriggersOnThreshold(t *testing.T) {
	e := newTestEngine(t, 1)

	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Set("a", "2"))
	require.NoError(t, e.Set("a", "3"))

	require.Zero(t, e.shared.uncompacted)

	value, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", value)
}

func TestEngineCloneSharesIndexAndWriter(t *testing.T) {
	e := newTestEngine(t, 0)

	clone := e.Clone()
	t.Cleanup(func() { _ = clone.Close() })

	require.NoError(t, e.Set("a", "1"))

	value, ok, err := clone.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}
