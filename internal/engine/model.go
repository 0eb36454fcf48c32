package engine

import (
	"sync"
	"sync/atomic"

	"github.com/wealrain/ignitekv/internal/compaction"
	"github.com/wealrain/ignitekv/internal/index"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/internal/storage"
	"github.com/wealrain/ignitekv/pkg/options"
	"go.uber.org/zap"
)

// Engine coordinates the index, the active segment writer, and per-clone
// segment readers into a single key-value store. Every clone shares the
// same index, writer mutex, and safe point, but owns an independent
// ReaderRegistry so that no read-side file handle crosses goroutines.
type Engine struct {
	options    *options.Options
	log        *zap.SugaredLogger
	closed     atomic.Bool
	index      *index.Index
	compaction *compaction.Compaction

	// writerMu serializes every mutating operation (set, remove, and the
	// compaction pass a threshold trip triggers) across every clone that
	// shares this *shared state.
	writerMu *sync.Mutex
	shared   *sharedState

	// reader is this clone's private segment-handle cache.
	reader *storage.ReaderRegistry

	// metrics is nil-safe: a zero-value *Metrics field means no collector
	// was configured and every instrumentation call below becomes a no-op.
	metrics *metrics.Metrics
}

// sharedState holds everything every clone of an Engine must agree on:
// the active writer, the current generation, the safe point below which
// segments are retired, and the running uncompacted-bytes counter.
// Everything but safePoint is only ever touched while holding writerMu;
// safePoint is an atomic so Get can consult it without taking that lock.
type sharedState struct {
	dataDir     string
	writer      *storage.Writer
	currentGen  uint64
	safePoint   atomic.Uint64
	uncompacted uint64
}

// Config holds all the parameters needed to initialize a new Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.Metrics
}
