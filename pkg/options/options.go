// Package options provides data structures and functions for configuring
// an IgniteKV instance. It defines the parameters that control storage
// behavior (segment sizing, compaction threshold), the network front end
// (listen address, worker pool), and exposes them as functional options so
// callers and CLI flag binding share one configuration surface.
package options

import "strings"

// PoolKind selects which worker pool implementation the server dispatches
// connections onto.
type PoolKind string

const (
	PoolKindNaive        PoolKind = "naive"
	PoolKindSharedQueue  PoolKind = "shared-queue"
	PoolKindWorkStealing PoolKind = "work-stealing"
)

// EngineKind selects which storage engine a server instance runs, recorded
// alongside the data directory in the `engine` selector file.
type EngineKind string

const (
	EngineKindKvs  EngineKind = "kvs"
	EngineKindSled EngineKind = "sled"
)

// segmentOptions defines configurable parameters for segment files.
type segmentOptions struct {
	// Size records a maximum segment size. The engine does not read it:
	// segments rotate only when compaction runs, not on size.
	//
	//  - Default: 1GB
	//  - Maximum: 4GB
	//  - Minimum: 512MB
	Size uint64 `json:"maxSegmentSize"`
}

// Options defines the configuration parameters for an IgniteKV instance.
// It provides control over storage, the network front end, and maintenance
// aspects.
type Options struct {
	// DataDir specifies the base path where segment and selector files are stored.
	//
	// Default: "/var/lib/ignitekv"
	DataDir string `json:"dataDir"`

	// CompactionThreshold is the number of uncompacted bytes that triggers a
	// synchronous compaction.
	//
	// Default: 1 MiB (1048576)
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// ListenAddr is the address the server binds to.
	//
	// Default: "127.0.0.1:4000"
	ListenAddr string `json:"listenAddr"`

	// PoolKind selects the worker pool implementation.
	//
	// Default: "shared-queue"
	PoolKind PoolKind `json:"poolKind"`

	// PoolSize is the number of workers in the pool. Zero means the caller
	// should default to runtime.NumCPU().
	PoolSize int `json:"poolSize"`

	// Engine selects which storage engine backs this data directory.
	//
	// Default: "kvs"
	Engine EngineKind `json:"engine"`

	// SegmentOptions configures segment size limits.
	SegmentOptions *segmentOptions `json:"segmentOptions"`
}

// OptionFunc is a function type that modifies an Options value.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration values.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.ListenAddr = opts.ListenAddr
		o.PoolKind = opts.PoolKind
		o.PoolSize = opts.PoolSize
		o.Engine = opts.Engine
		o.CompactionThreshold = opts.CompactionThreshold
		o.SegmentOptions = opts.SegmentOptions
	}
}

// WithDataDir sets the primary data directory.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCompactionThreshold sets the uncompacted-bytes threshold that
// triggers a synchronous compaction.
func WithCompactionThreshold(threshold uint64) OptionFunc {
	return func(o *Options) {
		if threshold > 0 {
			o.CompactionThreshold = threshold
		}
	}
}

// WithListenAddr sets the address the server binds to.
func WithListenAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.ListenAddr = addr
		}
	}
}

// WithPoolKind selects the worker pool implementation.
func WithPoolKind(kind PoolKind) OptionFunc {
	return func(o *Options) {
		if kind != "" {
			o.PoolKind = kind
		}
	}
}

// WithPoolSize sets the number of workers in the pool.
func WithPoolSize(size int) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.PoolSize = size
		}
	}
}

// WithEngine selects which storage engine a server instance runs.
func WithEngine(kind EngineKind) OptionFunc {
	return func(o *Options) {
		if kind != "" {
			o.Engine = kind
		}
	}
}

// WithSegmentSize sets the maximum size of individual segment files.
func WithSegmentSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.SegmentOptions.Size = size
		}
	}
}
