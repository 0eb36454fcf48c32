package compaction

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/internal/index"
	"github.com/wealrain/ignitekv/internal/logrecord"
	"github.com/wealrain/ignitekv/internal/storage"
	"github.com/wealrain/ignitekv/pkg/logger"
)

func writeCommand(t *testing.T, w *storage.Writer, idx *index.Index, cmd logrecord.Command) {
	t.Helper()
	var buf bytes.Buffer
	n, err := logrecord.Encode(&buf, cmd)
	require.NoError(t, err)

	offset, written, err := w.Append(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, n, written)

	if cmd.IsRemove() {
		idx.Delete(cmd.Key)
		return
	}
	idx.Set(cmd.Key, index.CommandPos{Gen: w.Gen(), Offset: offset, Len: written})
}

func TestCompactionRunCopiesLiveEntriesAndRetiresOldSegments(t *testing.T) {
	dir := t.TempDir()
	log := logger.Nop()

	idx, err := index.New(context.Background(), &index.Config{DataDir: dir, Logger: log})
	require.NoError(t, err)

	w1, err := storage.NewWriter(dir, 1, log)
	require.NoError(t, err)
	writeCommand(t, w1, idx, logrecord.SetCommand("a", "1"))
	writeCommand(t, w1, idx, logrecord.SetCommand("b", "2"))
	require.NoError(t, w1.Close())

	w2, err := storage.NewWriter(dir, 2, log)
	require.NoError(t, err)
	writeCommand(t, w2, idx, logrecord.SetCommand("a", "3"))
	writeCommand(t, w2, idx, logrecord.RemoveCommand("b"))
	require.NoError(t, w2.Close())

	reg := storage.NewReaderRegistry(dir, log)

	c := New(log)
	result, err := c.Run(dir, idx, reg, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), result.SafePoint)
	require.Equal(t, uint64(4), result.NextGen)

	_, err = os.Stat(filepath.Join(dir, "1.log"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "2.log"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "3.log"))
	require.NoError(t, err)

	pos, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, uint64(3), pos.Gen)

	_, ok = idx.Get("b")
	require.False(t, ok)

	data, err := reg.ReadAt(pos.Gen, pos.Offset, pos.Len)
	require.NoError(t, err)
	cmd, _, err := logrecord.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "3", cmd.Value)

	require.NoError(t, reg.Close())
}

func TestCompactionRunEmptyIndexStillRotatesGeneration(t *testing.T) {
	dir := t.TempDir()
	log := logger.Nop()

	idx, err := index.New(context.Background(), &index.Config{DataDir: dir, Logger: log})
	require.NoError(t, err)

	reg := storage.NewReaderRegistry(dir, log)

	c := New(log)
	result, err := c.Run(dir, idx, reg, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.SafePoint)
	require.Equal(t, uint64(2), result.NextGen)
	require.Equal(t, 0, idx.Len())

	require.NoError(t, reg.Close())
}
