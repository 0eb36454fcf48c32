// Package kvengine defines the storage-engine contract the server
// dispatches against, so a data directory can be served by either the
// native log-structured engine (internal/engine) or the embedded B-tree
// adapter (internal/boltengine) without the server knowing which.
package kvengine

// Engine is the operations a connection handler needs: get, set, remove,
// a cheap per-connection clone, and a shutdown hook.
type Engine interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Clone() Engine
	Close() error
}
