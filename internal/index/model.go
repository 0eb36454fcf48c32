package index

import (
	"sync/atomic"

	"github.com/benbjohnson/immutable"
	"go.uber.org/zap"
)

// CommandPos locates one Set record in the log: the segment generation it
// lives in, the byte offset of its first byte, and the number of bytes it
// spans. This is the only metadata the index keeps per key; the value
// itself always lives on disk.
type CommandPos struct {
	Gen    uint64
	Offset int64
	Len    int64
}

// Index is the in-memory key → command-position map. Reads never take a
// lock: Get atomically loads the current immutable sorted map snapshot and
// queries it directly, so a reader is never blocked by a concurrent writer.
// The single writer publishes a new map value after each mutation, sharing
// structure with the previous version rather than copying it whole.
type Index struct {
	dataDir string                                              // Directory containing the segment files this index describes.
	log     *zap.SugaredLogger                                  // Structured logger for index lifecycle events.
	current atomic.Pointer[immutable.SortedMap[string, CommandPos]] // Current snapshot of key -> position, swapped on every write.
	closed  atomic.Bool                                         // Indicates whether the index has been closed.
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string             // Directory containing the segment files this index describes.
	Logger  *zap.SugaredLogger // Structured logger for index lifecycle events.
}
