package engineselect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/pkg/logger"
	"github.com/wealrain/ignitekv/pkg/options"
)

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func TestOpenDefaultsToKvsAndWritesSelector(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	e, err := Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.NoError(t, err)
	defer e.Close()

	contents, err := os.ReadFile(filepath.Join(dir, selectorFile))
	require.NoError(t, err)
	require.Equal(t, string(options.EngineKindKvs), string(contents))
}

func TestOpenSledBacksWithBolt(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.Engine = options.EngineKindSled

	e, err := Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Set("a", "1"))
	value, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}

func TestOpenRejectsMismatchedEngine(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	e, err := Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.NoError(t, err)
	require.NoError(t, e.Close())

	opts.Engine = options.EngineKindSled
	_, err = Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.Error(t, err)
}

func TestOpenReopenSameDirReusesRecordedEngine(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.Engine = options.EngineKindSled

	e1, err := Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.NoError(t, err)
	require.NoError(t, e1.Set("a", "1"))
	require.NoError(t, e1.Close())

	opts.Engine = ""
	e2, err := Open(context.Background(), &opts, logger.Nop(), testMetrics())
	require.NoError(t, err)
	defer e2.Close()

	value, ok, err := e2.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}

func TestReadSelectorTreatsMalformedContentsAsUnset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, selectorFile), []byte("not-a-real-engine"), 0644))

	kind, err := readSelector(dir, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, options.EngineKind(""), kind)
}

func TestReadSelectorMissingFileReturnsUnset(t *testing.T) {
	kind, err := readSelector(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	require.Equal(t, options.EngineKind(""), kind)
}
