// Package compaction implements the synchronous log-compaction protocol
// the engine triggers once its uncompacted-bytes counter crosses the
// configured threshold. Compaction walks every live index entry, copies
// its bytes verbatim into a fresh segment, republishes the index, and
// retires the now-stale segments.
package compaction

import (
	"os"

	"github.com/wealrain/ignitekv/internal/index"
	"github.com/wealrain/ignitekv/internal/storage"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/seginfo"
	"go.uber.org/zap"
)

// Compaction drives one compaction pass. It holds no state across runs;
// a single instance can be reused by the engine for every threshold trip.
type Compaction struct {
	log *zap.SugaredLogger
}

// New returns a Compaction instance that logs through log.
func New(log *zap.SugaredLogger) *Compaction {
	return &Compaction{log: log}
}

// Result carries what the engine needs to adopt after a compaction pass:
// the new active generation to resume writing at, and the safe point
// below which all segments are now retired.
type Result struct {
	NextGen   uint64
	SafePoint uint64
}

// Run executes one compaction pass against dataDir. currentGen is the
// generation the engine was writing to before this call; the caller must
// already hold the engine's writer mutex, since Run mutates idx in place
// and reads live segment bytes through reg.
//
// The caller must flush and close its old active Writer before calling
// Run, since Run deletes every segment below the compaction generation,
// currentGen included. On success the caller switches to a Writer opened
// at Result.NextGen; Run does not itself switch the engine's active writer
// so that the caller controls exactly when in-flight appends are cut over.
func (c *Compaction) Run(
	dataDir string,
	idx *index.Index,
	reg *storage.ReaderRegistry,
	currentGen uint64,
) (Result, error) {
	compactGen := currentGen + 1
	nextGen := currentGen + 2

	c.log.Infow("Starting compaction", "currentGen", currentGen, "compactGen", compactGen, "nextGen", nextGen)

	out, err := storage.NewWriter(dataDir, compactGen, c.log)
	if err != nil {
		return Result{}, err
	}

	type move struct {
		key string
		pos index.CommandPos
	}
	var moves []move

	var copyErr error
	idx.Iter(func(key string, pos index.CommandPos) bool {
		data, err := reg.ReadAt(pos.Gen, pos.Offset, pos.Len)
		if err != nil {
			copyErr = err
			return false
		}

		offset, n, err := out.Append(data)
		if err != nil {
			copyErr = err
			return false
		}

		moves = append(moves, move{key: key, pos: index.CommandPos{Gen: compactGen, Offset: offset, Len: n}})
		return true
	})
	if copyErr != nil {
		_ = out.Close()
		return Result{}, copyErr
	}

	if err := out.Flush(); err != nil {
		return Result{}, err
	}
	if err := out.Close(); err != nil {
		return Result{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close compaction segment")
	}

	for _, m := range moves {
		idx.Set(m.key, m.pos)
	}

	c.log.Infow("Compaction copy complete", "entries", len(moves), "safePoint", compactGen)

	gens, err := seginfo.SortedGenList(dataDir)
	if err != nil {
		return Result{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to enumerate segments for cleanup")
	}

	for _, gen := range gens {
		if gen >= compactGen {
			continue
		}
		path := seginfo.Path(dataDir, gen)
		if err := os.Remove(path); err != nil {
			c.log.Warnw("failed to remove stale segment, leaving for a later pass", "gen", gen, "path", path, "error", err)
		}
	}

	reg.EvictBelow(compactGen)

	return Result{NextGen: nextGen, SafePoint: compactGen}, nil
}
