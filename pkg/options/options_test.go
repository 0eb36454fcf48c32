package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultOptions(t *testing.T) {
	opts := NewDefaultOptions()
	require.Equal(t, DefaultDataDir, opts.DataDir)
	require.Equal(t, DefaultListenAddr, opts.ListenAddr)
	require.Equal(t, DefaultPoolKind, opts.PoolKind)
	require.Equal(t, DefaultEngine, opts.Engine)
	require.Equal(t, DefaultCompactionThreshold, opts.CompactionThreshold)
	require.NotNil(t, opts.SegmentOptions)
	require.Equal(t, DefaultSegmentSize, opts.SegmentOptions.Size)
}

func TestNewDefaultOptionsReturnsIndependentSegmentOptions(t *testing.T) {
	a := NewDefaultOptions()
	b := NewDefaultOptions()

	a.SegmentOptions.Size = MinSegmentSize
	require.Equal(t, DefaultSegmentSize, b.SegmentOptions.Size)
}

func TestWithDataDirIgnoresBlank(t *testing.T) {
	opts := NewDefaultOptions()
	WithDataDir("  ")(&opts)
	require.Equal(t, DefaultDataDir, opts.DataDir)

	WithDataDir("/data")(&opts)
	require.Equal(t, "/data", opts.DataDir)
}

func TestWithCompactionThresholdIgnoresZero(t *testing.T) {
	opts := NewDefaultOptions()
	WithCompactionThreshold(0)(&opts)
	require.Equal(t, DefaultCompactionThreshold, opts.CompactionThreshold)

	WithCompactionThreshold(2048)(&opts)
	require.EqualValues(t, 2048, opts.CompactionThreshold)
}

func TestWithPoolKindIgnoresBlank(t *testing.T) {
	opts := NewDefaultOptions()
	WithPoolKind("")(&opts)
	require.Equal(t, DefaultPoolKind, opts.PoolKind)

	WithPoolKind(PoolKindWorkStealing)(&opts)
	require.Equal(t, PoolKindWorkStealing, opts.PoolKind)
}

func TestWithEngineIgnoresBlank(t *testing.T) {
	opts := NewDefaultOptions()
	WithEngine("")(&opts)
	require.Equal(t, DefaultEngine, opts.Engine)

	WithEngine(EngineKindSled)(&opts)
	require.Equal(t, EngineKindSled, opts.Engine)
}

func TestWithSegmentSizeRejectsOutOfRange(t *testing.T) {
	opts := NewDefaultOptions()

	WithSegmentSize(MinSegmentSize - 1)(&opts)
	require.Equal(t, DefaultSegmentSize, opts.SegmentOptions.Size)

	WithSegmentSize(MaxSegmentSize + 1)(&opts)
	require.Equal(t, DefaultSegmentSize, opts.SegmentOptions.Size)

	valid := MinSegmentSize + 1
	WithSegmentSize(valid)(&opts)
	require.Equal(t, valid, opts.SegmentOptions.Size)
}

func TestWithDefaultOptionsResetsToDefaults(t *testing.T) {
	opts := Options{DataDir: "/custom", PoolKind: PoolKindNaive}
	WithDefaultOptions()(&opts)
	require.Equal(t, DefaultDataDir, opts.DataDir)
	require.Equal(t, DefaultPoolKind, opts.PoolKind)
}
