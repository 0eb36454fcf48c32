// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory sorted index of key positions with an append-only
// log structure on disk to achieve high throughput. It is designed for
// applications requiring fast read and write operations, such as caching,
// session management, and real-time data processing, aiming to provide a
// simple, efficient, and reliable solution for persistent data storage in Go
// applications.
package ignite

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wealrain/ignitekv/internal/engineselect"
	"github.com/wealrain/ignitekv/internal/kvengine"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/pkg/logger"
	"github.com/wealrain/ignitekv/pkg/options"
)

// Instance is the primary entry point for embedding the store directly in
// a Go process, without the network hop the client/server pair uses. It
// wraps whichever backend the data directory's engine selector names.
type Instance struct {
	engine  kvengine.Engine
	options *options.Options
}

// NewInstance opens (or creates) an Instance rooted at the data directory
// named by opts, applying any functional options over the default
// configuration.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log, err := logger.New(logger.Options{})
	if err != nil {
		return nil, err
	}
	log = log.Named(service)

	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	eng, err := engineselect.Open(ctx, &resolved, log, metrics.New(prometheus.NewRegistry()))
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &resolved}, nil
}

// Set stores a key-value pair in the database. If the key already exists,
// its value is replaced. The write is durable before Set returns.
func (i *Instance) Set(ctx context.Context, key, value string) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value associated with key. The returned bool reports
// whether the key had a live entry; (\"\", false, nil) means it did not.
func (i *Instance) Get(ctx context.Context, key string) (string, bool, error) {
	return i.engine.Get(key)
}

// Delete removes a key-value pair from the database, failing if the key
// has no live entry.
func (i *Instance) Delete(ctx context.Context, key string) error {
	return i.engine.Remove(key)
}

// Close releases every resource held by this Instance.
func (i *Instance) Close(ctx context.Context) error {
	if wc, ok := i.engine.(interface{ CloseWriter() error }); ok {
		if err := wc.CloseWriter(); err != nil {
			return err
		}
	}
	return i.engine.Close()
}
