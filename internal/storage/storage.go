// Package storage provides the on-disk segment layer for the ignitekv
// storage engine: an append-only Writer for the single active segment, and
// a ReaderRegistry that caches open segment handles for random-access
// reads during Get and compaction.
//
// Core Architecture:
//
// Data lives in a directory of immutable segment files named "<gen>.log".
// At any time exactly one generation is "active" — the Writer appends new
// command records to it — while older generations are read-only and
// addressed purely by (gen, offset, len) triples recorded in the index.
// A segment is never rewritten in place; once compaction produces a
// smaller replacement generation, the stale segments are deleted outright
// rather than truncated or edited.
//
// Initialization and Recovery:
//
// Segment discovery and generation allocation are the engine's job (it
// must replay every prior segment into the index before picking the next
// generation); this package only opens a named generation for append,
// seeking to its end to recover the current write offset.
package storage

import (
	"bufio"
	stdErrors "errors"
	"io"
	"os"

	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/seginfo"
	"go.uber.org/zap"
)

var (
	ErrWriterClosed = stdErrors.New("operation failed: cannot access closed writer")
)

// NewWriter creates the segment for gen if it does not exist, or opens the
// existing one in append mode without truncating it, and returns a Writer
// positioned at its current end. The engine uses it for each new active
// generation and compaction for its output generation.
func NewWriter(dataDir string, gen uint64, log *zap.SugaredLogger) (*Writer, error) {
	return openWriterAt(dataDir, gen, log)
}

func openWriterAt(dataDir string, gen uint64, log *zap.SugaredLogger) (*Writer, error) {
	path := seginfo.Path(dataDir, gen)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, seginfo.GenerateName(gen))
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek to end of segment").
			WithFileName(seginfo.GenerateName(gen)).WithPath(path)
	}

	log.Infow("Segment writer opened", "gen", gen, "path", path, "offset", offset)

	return &Writer{
		dataDir: dataDir,
		gen:     gen,
		file:    file,
		buf:     bufio.NewWriter(file),
		offset:  offset,
		log:     log,
	}, nil
}

// Gen reports the generation number of the segment this writer owns.
func (w *Writer) Gen() uint64 { return w.gen }

// Offset reports the current end-of-file write position.
func (w *Writer) Offset() int64 { return w.offset }

// Append writes p to the active segment and returns the offset at which
// it was written along with its length. Callers must hold the engine's
// writer mutex; Append is not safe for concurrent use on its own.
func (w *Writer) Append(p []byte) (offset int64, n int64, err error) {
	if w.closed {
		return 0, 0, ErrWriterClosed
	}

	written, err := w.buf.Write(p)
	if err != nil {
		return 0, 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append to segment").
			WithFileName(seginfo.GenerateName(w.gen)).WithSegmentID(int(w.gen))
	}

	offset = w.offset
	w.offset += int64(written)
	return offset, int64(written), nil
}

// Flush ensures all buffered writes reach the underlying file and are
// durable on disk.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to flush segment buffer").
			WithFileName(seginfo.GenerateName(w.gen))
	}
	if err := w.file.Sync(); err != nil {
		return errors.ClassifySyncError(err, seginfo.GenerateName(w.gen), w.dataDir, int(w.offset))
	}
	return nil
}

// Close flushes and closes the active segment file. Calling it twice is
// a no-op: the second call returns nil rather than ErrWriterClosed, since
// shutdown paths may close the same writer from more than one place.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if err := w.Flush(); err != nil {
		return err
	}
	w.closed = true
	return w.file.Close()
}

// OpenReplaySegment opens an existing segment file read-only and
// positioned at its start, for sequential record-by-record replay.
func OpenReplaySegment(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, errors.NewStorageError(
			err, errors.ErrorCodeIO, "failed to open segment for replay",
		).WithPath(path)
	}
	return file, nil
}
