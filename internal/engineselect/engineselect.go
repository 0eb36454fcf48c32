// Package engineselect reads (or creates) the `engine` selector file in a
// data directory and opens the backend it names, adapting the
// log-structured engine to the shared kvengine.Engine contract so the
// server can run against either backend uninformed of which it got.
package engineselect

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/wealrain/ignitekv/internal/boltengine"
	"github.com/wealrain/ignitekv/internal/engine"
	"github.com/wealrain/ignitekv/internal/kvengine"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/filesys"
	"github.com/wealrain/ignitekv/pkg/options"
	"go.uber.org/zap"
)

const selectorFile = "engine"

// engineAdapter presents an *engine.Engine as a kvengine.Engine.
type engineAdapter struct {
	*engine.Engine
}

// Clone overrides the embedded *engine.Engine.Clone (which returns
// *engine.Engine) to satisfy kvengine.Engine's Clone() Engine signature.
func (a *engineAdapter) Clone() kvengine.Engine {
	return &engineAdapter{Engine: a.Engine.Clone()}
}

var _ kvengine.Engine = (*engineAdapter)(nil)

// Open reads (or creates) the `engine` selector file in opts.DataDir and
// opens the backend it names. An empty opts.Engine selects the recorded
// engine, or the default engine if none is recorded yet. Requesting a
// different engine than the one already recorded for this data directory
// is a fatal error.
func Open(ctx context.Context, opts *options.Options, log *zap.SugaredLogger, m *metrics.Metrics) (kvengine.Engine, error) {
	recorded, err := readSelector(opts.DataDir, log)
	if err != nil {
		return nil, err
	}

	requested := opts.Engine
	switch {
	case recorded == "" && requested == "":
		recorded = options.DefaultEngine
	case recorded == "":
		recorded = requested
	case requested != "" && recorded != requested:
		return nil, errors.NewEngineMismatchError(string(requested), string(recorded))
	}

	if err := writeSelector(opts.DataDir, recorded); err != nil {
		return nil, err
	}

	switch recorded {
	case options.EngineKindSled:
		path := filepath.Join(opts.DataDir, "sled.db")
		return boltengine.Open(path)

	case options.EngineKindKvs, "":
		e, err := engine.New(ctx, &engine.Config{Options: opts, Logger: log, Metrics: m})
		if err != nil {
			return nil, err
		}
		return &engineAdapter{Engine: e}, nil

	default:
		return nil, errors.NewFieldFormatError("engine", recorded, "oneof=kvs,sled")
	}
}

// readSelector returns the engine recorded in dataDir's selector file, or
// "" if none exists yet. A file whose content isn't a known engine kind is
// treated as unset rather than a fatal error, matching the original
// implementation's tolerant recovery from a malformed selector file.
func readSelector(dataDir string, log *zap.SugaredLogger) (options.EngineKind, error) {
	data, err := filesys.ReadFile(filepath.Join(dataDir, selectorFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read engine selector file")
	}

	kind := options.EngineKind(strings.TrimSpace(string(data)))
	switch kind {
	case options.EngineKindKvs, options.EngineKindSled:
		return kind, nil
	default:
		log.Warnw("engine selector file contents are invalid, treating as unset", "contents", string(data))
		return "", nil
	}
}

func writeSelector(dataDir string, kind options.EngineKind) error {
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return errors.ClassifyDirectoryCreationError(err, dataDir)
	}

	path := filepath.Join(dataDir, selectorFile)
	if err := filesys.WriteFile(path, 0644, []byte(string(kind))); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write engine selector file").WithPath(path)
	}
	return nil
}
