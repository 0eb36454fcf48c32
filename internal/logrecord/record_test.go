package logrecord

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSetCommand(t *testing.T) {
	var buf bytes.Buffer

	cmd := SetCommand("key", "value")
	n, err := Encode(&buf, cmd)
	require.NoError(t, err)

	got, read, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, n, read)
	require.Equal(t, cmd, got)
	require.True(t, got.IsSet())
	require.False(t, got.IsRemove())
}

func TestEncodeDecodeRemoveCommand(t *testing.T) {
	var buf bytes.Buffer

	cmd := RemoveCommand("key")
	_, err := Encode(&buf, cmd)
	require.NoError(t, err)

	got, _, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, cmd, got)
	require.True(t, got.IsRemove())
	require.False(t, got.IsSet())
}

func TestDecodeSequentialRecordsPreservesOffsets(t *testing.T) {
	var buf bytes.Buffer
	n1, err := Encode(&buf, SetCommand("a", "1"))
	require.NoError(t, err)
	n2, err := Encode(&buf, RemoveCommand("a"))
	require.NoError(t, err)

	first, read1, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, n1, read1)
	require.Equal(t, SetCommand("a", "1"), first)

	second, read2, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, n2, read2)
	require.Equal(t, RemoveCommand("a"), second)

	_, _, err = Decode(&buf)
	require.ErrorIs(t, err, io.EOF)
}
