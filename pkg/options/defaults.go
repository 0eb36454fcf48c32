package options

const (
	// DefaultDataDir specifies the default base directory where IgniteKV
	// will store its data files, if no other directory is specified.
	DefaultDataDir = "/var/lib/ignitekv"

	// DefaultCompactionThreshold is the number of uncompacted bytes that
	// triggers a synchronous compaction (1 MiB, per the external interface).
	DefaultCompactionThreshold uint64 = 1024 * 1024

	// MinSegmentSize is the minimum allowed size for a segment file in bytes (512MB).
	MinSegmentSize uint64 = 512 * 1024 * 1024

	// MaxSegmentSize is the maximum allowed size for a segment file in bytes (4GB).
	MaxSegmentSize uint64 = 4 * 1024 * 1024 * 1024

	// DefaultSegmentSize is the default target size for a new segment file in bytes (1GB).
	DefaultSegmentSize uint64 = 1 * 1024 * 1024 * 1024

	// DefaultListenAddr is the address the server binds to when unset.
	DefaultListenAddr = "127.0.0.1:4000"

	// DefaultPoolKind selects the shared-queue worker pool when unset.
	DefaultPoolKind = PoolKindSharedQueue

	// DefaultEngine selects the native log-structured engine when unset.
	DefaultEngine = EngineKindKvs
)

// Holds the default configuration settings for an IgniteKV instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	ListenAddr:          DefaultListenAddr,
	PoolKind:            DefaultPoolKind,
	Engine:              DefaultEngine,
	CompactionThreshold: DefaultCompactionThreshold,
	SegmentOptions:      &segmentOptions{Size: DefaultSegmentSize},
}

// NewDefaultOptions returns a fresh copy of the default option set.
func NewDefaultOptions() Options {
	opts := defaultOptions
	segOpts := *defaultOptions.SegmentOptions
	opts.SegmentOptions = &segOpts
	return opts
}
