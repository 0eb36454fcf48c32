package storage

import (
	"bufio"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Writer owns the single active segment file an engine appends to. It is
// not safe for concurrent use on its own — the engine serializes all calls
// to it behind its writer mutex — but it tracks its own write offset so
// callers never need to stat the file to learn the current end position.
type Writer struct {
	dataDir string             // Directory containing all segment files.
	gen     uint64             // Generation number of the segment this writer owns.
	file    *os.File           // Underlying segment file, opened for append.
	buf     *bufio.Writer      // Buffers writes to reduce syscall overhead.
	offset  int64              // Current end-of-file write position.
	log     *zap.SugaredLogger // Structured logger for segment lifecycle events.
	closed  bool               // Set once Close has run; guards against use-after-close.
}

// ReaderRegistry is a per-engine-clone cache of open segment file handles,
// read via ReadAt so no seek position is ever shared or raced across
// concurrent readers. Entries are evicted once their generation falls
// below the engine's safe point, since the underlying file may be unlinked
// by compaction at that point.
type ReaderRegistry struct {
	dataDir string
	mu      sync.Mutex
	handles map[uint64]*os.File
	log     *zap.SugaredLogger
}

// Config encapsulates the configuration parameters required to initialize
// the storage subsystem.
type Config struct {
	DataDir string
	Logger  *zap.SugaredLogger
}
