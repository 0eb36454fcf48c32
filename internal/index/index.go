// Package index provides the in-memory key → command-position map for the
// ignitekv storage engine. This package embodies the core Bitcask
// architectural principle: keep every key in memory with minimal metadata
// while the actual values stay on disk.
//
// The index must satisfy two conflicting requirements at once: readers must
// never block behind a concurrent writer, and compaction must be able to
// walk every entry in a stable order. A lock-free immutable sorted map
// satisfies both: Get loads the current snapshot atomically with no lock at
// all, while Set/Delete build a new snapshot (sharing structure with the
// old one) and publish it with a single atomic store, serialized by the
// engine's writer mutex.
package index

import (
	"context"
	stdErrors "errors"

	"github.com/benbjohnson/immutable"
	"github.com/wealrain/ignitekv/pkg/errors"
)

var (
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates and initializes a new Index instance configured according to
// the provided parameters. The returned Index is immediately ready for
// concurrent use.
func New(ctx context.Context, config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "index configuration is required")
	}

	idx := &Index{log: config.Logger, dataDir: config.DataDir}
	idx.current.Store(&immutable.SortedMap[string, CommandPos]{})
	return idx, nil
}

// snapshot returns the current immutable map, which is never nil once New
// has run.
func (idx *Index) snapshot() *immutable.SortedMap[string, CommandPos] {
	return idx.current.Load()
}

// Get looks up key and reports whether it has a live entry. This never
// blocks: it loads the current snapshot pointer and queries it directly,
// so a concurrent Set or Delete is either fully visible or not visible at
// all, never half-applied.
func (idx *Index) Get(key string) (CommandPos, bool) {
	return idx.snapshot().Get(key)
}

// Set installs pos for key, returning the previous entry if one existed.
// Only the engine's single writer, under its mutex, calls this.
func (idx *Index) Set(key string, pos CommandPos) (CommandPos, bool) {
	snap := idx.snapshot()
	prev, existed := snap.Get(key)
	idx.current.Store(snap.Set(key, pos))
	return prev, existed
}

// Delete removes key from the index, returning the entry that was removed.
// Only the engine's single writer, under its mutex, calls this.
func (idx *Index) Delete(key string) (CommandPos, bool) {
	snap := idx.snapshot()
	prev, existed := snap.Get(key)
	if !existed {
		return CommandPos{}, false
	}
	idx.current.Store(snap.Delete(key))
	return prev, true
}

// Len returns the number of live entries in the index.
func (idx *Index) Len() int {
	return idx.snapshot().Len()
}

// Iter walks every index entry in ascending key order, the stable order
// compaction relies on. It stops early if fn returns false.
func (idx *Index) Iter(fn func(key string, pos CommandPos) bool) {
	snap := idx.snapshot()
	it := snap.Iterator()
	for !it.Done() {
		key, pos, _ := it.Next()
		if !fn(key, pos) {
			return
		}
	}
}

// Close gracefully shuts down the Index, cleaning up resources and ensuring
// that the index cannot be used after closure.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("Closing index system")
	idx.current.Store(&immutable.SortedMap[string, CommandPos]{})
	idx.log.Infow("Index system closed successfully")
	return nil
}
