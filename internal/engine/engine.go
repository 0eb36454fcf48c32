// Package engine implements the storage engine that backs the ignitekv
// server: a lock-free index over an append-only log, a single-writer
// discipline for mutations, and synchronous threshold-triggered
// compaction.
//
// The engine orchestrates three subsystems:
//   - internal/index: in-memory key -> command-position map
//   - internal/storage: segment append/read
//   - internal/compaction: reclaiming space once the uncompacted-bytes
//     counter crosses the configured threshold
package engine

import (
	"bufio"
	"bytes"
	"context"
	stdErrors "errors"
	"io"
	"sync"

	"github.com/wealrain/ignitekv/internal/compaction"
	"github.com/wealrain/ignitekv/internal/index"
	"github.com/wealrain/ignitekv/internal/logrecord"
	"github.com/wealrain/ignitekv/internal/storage"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/filesys"
	"github.com/wealrain/ignitekv/pkg/options"
	"github.com/wealrain/ignitekv/pkg/seginfo"
	"go.uber.org/zap"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)

// New opens (or creates) an engine rooted at config.Options.DataDir: it
// ensures the directory exists, replays every existing segment into a
// fresh index, and opens the next generation for writing.
func New(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "engine configuration is required")
	}

	dataDir := config.Options.DataDir
	config.Logger.Infow("Opening engine", "dataDir", dataDir)

	idx, err := index.New(ctx, &index.Config{DataDir: dataDir, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, dataDir)
	}

	gens, err := seginfo.SortedGenList(dataDir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to discover segments")
	}

	uncompacted, err := replay(dataDir, gens, idx, config.Logger)
	if err != nil {
		return nil, err
	}

	var nextGen uint64 = 1
	if len(gens) > 0 {
		nextGen = gens[len(gens)-1] + 1
	}

	writer, err := storage.NewWriter(dataDir, nextGen, config.Logger)
	if err != nil {
		return nil, err
	}

	shared := &sharedState{
		dataDir:     dataDir,
		writer:      writer,
		currentGen:  nextGen,
		uncompacted: uncompacted,
	}

	e := &Engine{
		options:    config.Options,
		log:        config.Logger,
		index:      idx,
		compaction: compaction.New(config.Logger),
		writerMu:   &sync.Mutex{},
		shared:     shared,
		reader:     storage.NewReaderRegistry(dataDir, config.Logger),
		metrics:    config.Metrics,
	}
	e.metrics.SetUncompacted(uncompacted)

	config.Logger.Infow(
		"Engine opened successfully",
		"dataDir", dataDir, "currentGen", nextGen, "uncompacted", uncompacted, "indexSize", idx.Len(),
	)
	return e, nil
}

// replay walks every segment in ascending generation order and installs
// its records into idx, returning the accumulated uncompacted-bytes count.
func replay(dataDir string, gens []uint64, idx *index.Index, log *zap.SugaredLogger) (uint64, error) {
	var uncompacted uint64

	for _, gen := range gens {
		path := seginfo.Path(dataDir, gen)
		file, err := storage.OpenReplaySegment(path)
		if err != nil {
			return 0, err
		}
		r := bufio.NewReader(file)

		var offset int64
		for {
			cmd, n, err := logrecord.Decode(r)
			if err == io.EOF {
				break
			}
			if err != nil {
				_ = file.Close()
				return 0, errors.NewEngineError(err, errors.ErrorCodeSerde, "corrupt record encountered during replay").
					WithDetail("gen", gen).WithDetail("offset", offset)
			}

			start := offset
			offset += n

			switch {
			case cmd.IsSet():
				if prev, existed := idx.Set(cmd.Key, index.CommandPos{Gen: gen, Offset: start, Len: n}); existed {
					uncompacted += uint64(prev.Len)
				}
			case cmd.IsRemove():
				if prev, existed := idx.Delete(cmd.Key); existed {
					uncompacted += uint64(prev.Len)
				}
				uncompacted += uint64(n)
			}
		}

		if err := file.Close(); err != nil {
			log.Warnw("failed to close segment after replay", "gen", gen, "error", err)
		}
	}

	return uncompacted, nil
}

// Set installs value for key, triggering compaction if the write pushes
// the uncompacted-bytes counter past the configured threshold.
func (e *Engine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.writerMu.Lock()
	defer e.writerMu.Unlock()

	cmd := logrecord.SetCommand(key, value)
	n, err := e.appendLocked(cmd)
	if err != nil {
		return err
	}

	pos := index.CommandPos{Gen: e.shared.currentGen, Offset: e.shared.writer.Offset() - n, Len: n}
	if prev, existed := e.index.Set(key, pos); existed {
		e.shared.uncompacted += uint64(prev.Len)
	}

	e.metrics.IncSets()
	e.metrics.SetUncompacted(e.shared.uncompacted)
	return e.maybeCompactLocked()
}

// Get returns the value stored for key, or ok=false if no live entry
// exists. It never blocks on a concurrent writer.
func (e *Engine) Get(key string) (string, bool, error) {
	if e.closed.Load() {
		return "", false, ErrEngineClosed
	}
	e.metrics.IncGets()

	pos, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	e.reader.EvictBelow(e.shared.safePoint.Load())

	data, err := e.reader.ReadAt(pos.Gen, pos.Offset, pos.Len)
	if err != nil {
		return "", false, err
	}

	cmd, _, err := logrecord.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false, err
	}
	if !cmd.IsSet() {
		return "", false, errors.NewUnexpectedCommandTypeError(key)
	}

	return cmd.Value, true, nil
}

// Remove deletes key, failing with a key-not-found EngineError if it has
// no live entry. Like Set, it may trigger compaction.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.writerMu.Lock()
	defer e.writerMu.Unlock()

	if _, ok := e.index.Get(key); !ok {
		return errors.NewKeyNotFoundError(key)
	}

	cmd := logrecord.RemoveCommand(key)
	n, err := e.appendLocked(cmd)
	if err != nil {
		return err
	}

	if prev, existed := e.index.Delete(key); existed {
		e.shared.uncompacted += uint64(prev.Len)
	}
	e.shared.uncompacted += uint64(n)

	e.metrics.IncRemoves()
	e.metrics.SetUncompacted(e.shared.uncompacted)
	return e.maybeCompactLocked()
}

// appendLocked serializes cmd to the active segment and flushes it
// durably, returning the number of bytes written. Callers must already
// hold writerMu.
func (e *Engine) appendLocked(cmd logrecord.Command) (int64, error) {
	var buf bytes.Buffer
	if _, err := logrecord.Encode(&buf, cmd); err != nil {
		return 0, err
	}

	_, n, err := e.shared.writer.Append(buf.Bytes())
	if err != nil {
		return 0, err
	}
	if err := e.shared.writer.Flush(); err != nil {
		return 0, err
	}

	return n, nil
}

// maybeCompactLocked runs a compaction pass if the uncompacted counter has
// crossed the configured threshold. Callers must already hold writerMu.
func (e *Engine) maybeCompactLocked() error {
	threshold := e.options.CompactionThreshold
	if threshold == 0 {
		threshold = options.DefaultCompactionThreshold
	}
	if e.shared.uncompacted <= threshold {
		return nil
	}

	e.log.Infow("Uncompacted threshold exceeded, compacting", "uncompacted", e.shared.uncompacted, "threshold", threshold)

	if err := e.shared.writer.Flush(); err != nil {
		return err
	}
	if err := e.shared.writer.Close(); err != nil {
		return err
	}

	result, err := e.compaction.Run(e.shared.dataDir, e.index, e.reader, e.shared.currentGen)
	if err != nil {
		return err
	}

	next, err := storage.NewWriter(e.shared.dataDir, result.NextGen, e.log)
	if err != nil {
		return err
	}

	e.shared.writer = next
	e.shared.currentGen = result.NextGen
	e.shared.safePoint.Store(result.SafePoint)
	e.shared.uncompacted = 0

	e.metrics.IncCompactions()
	e.metrics.SetUncompacted(0)
	return nil
}

// Clone returns a new Engine handle sharing this one's index, writer
// mutex, and shared state, but owning an independent segment reader
// cache — the per-connection unit the server hands to each worker.
func (e *Engine) Clone() *Engine {
	return &Engine{
		options:    e.options,
		log:        e.log,
		index:      e.index,
		compaction: e.compaction,
		writerMu:   e.writerMu,
		shared:     e.shared,
		reader:     storage.NewReaderRegistry(e.shared.dataDir, e.log),
		metrics:    e.metrics,
	}
}

// Close releases this clone's reader handles. Only the engine that opened
// the writer (the original handle returned by New, not a Clone) should
// also shut down the active segment; callers orchestrate that via
// CloseWriter on a single designated owner.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return e.reader.Close()
}

// CloseWriter flushes and closes the active segment and the index. Call
// this once, on the original engine handle, during process shutdown.
func (e *Engine) CloseWriter() error {
	e.writerMu.Lock()
	defer e.writerMu.Unlock()

	if err := e.shared.writer.Close(); err != nil {
		return err
	}
	return e.index.Close()
}
