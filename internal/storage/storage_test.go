package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/pkg/logger"
)

func TestWriterAppendTracksOffset(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)

	off1, n1, err := w.Append([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(0), off1)
	require.Equal(t, int64(5), n1)

	off2, n2, err := w.Append([]byte("world!"))
	require.NoError(t, err)
	require.Equal(t, int64(5), off2)
	require.Equal(t, int64(6), n2)

	require.Equal(t, int64(11), w.Offset())
	require.NoError(t, w.Close())
}

func TestWriterReopenRecoversOffset(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	_, _, err = w.Append([]byte("abcd"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w2, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, int64(4), w2.Offset())
	require.NoError(t, w2.Close())
}

func TestOpenReplaySegmentMissingFile(t *testing.T) {
	_, err := OpenReplaySegment(filepath.Join(t.TempDir(), "1.log"))
	require.Error(t, err)
}

func TestReaderRegistryReadAt(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	off, n, err := w.Append([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reg := NewReaderRegistry(dir, logger.Nop())
	data, err := reg.ReadAt(1, off, n)
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))
	require.NoError(t, reg.Close())
}

func TestReaderRegistryEvictBelow(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	_, _, err = w.Append([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reg := NewReaderRegistry(dir, logger.Nop())
	_, err = reg.ReadAt(1, 0, 1)
	require.NoError(t, err)

	reg.EvictBelow(2)
	require.Empty(t, reg.handles)
	require.NoError(t, reg.Close())
}

func TestReaderRegistryReadAtMissingSegment(t *testing.T) {
	reg := NewReaderRegistry(t.TempDir(), logger.Nop())
	_, err := reg.ReadAt(99, 0, 1)
	require.Error(t, err)
}

func TestWriterAppendAfterCloseFails(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, _, err = w.Append([]byte("x"))
	require.ErrorIs(t, err, ErrWriterClosed)
}

func TestWriterDoubleCloseIsNoop(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 1, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewWriterCreatesSegmentFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 5, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, uint64(5), w.Gen())
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(dir, "5.log"))
	require.NoError(t, err)
}
