// Package boltengine adapts go.etcd.io/bbolt into the kvengine.Engine
// contract, giving the server a second selectable storage backend (the
// data directory's `engine` selector file records which one created it).
//
// Unlike the log-structured engine, bbolt's *bbolt.DB is already safe for
// unrestricted concurrent use, so there is no writer mutex or per-clone
// reader registry here: Clone is a cheap no-op that hands back the same
// handle.
package boltengine

import (
	stdErrors "errors"

	"github.com/wealrain/ignitekv/internal/kvengine"
	"github.com/wealrain/ignitekv/pkg/errors"
	"go.etcd.io/bbolt"
)

var bucketName = []byte("ignitekv")

// Engine is a kvengine.Engine backed by a single bbolt bucket: every key
// lives directly as a bucket key, every value as its bucket value.
type Engine struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) a bbolt database file at path and
// ensures the bucket this engine stores all keys in exists.
func Open(path string) (*Engine, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open bolt database").WithPath(path)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create bucket").WithPath(path)
	}

	return &Engine{db: db}, nil
}

// Get returns the value stored for key, or found=false if absent.
func (e *Engine) Get(key string) (string, bool, error) {
	var value string
	var found bool

	err := e.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			found = true
			value = string(v)
		}
		return nil
	})
	if err != nil {
		return "", false, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read key")
	}

	return value, found, nil
}

// Set stores value for key.
func (e *Engine) Set(key, value string) error {
	err := e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write key")
	}
	return nil
}

// Remove deletes key, failing with a key-not-found EngineError if it has
// no live entry — bbolt's own Delete is a no-op on a missing key, so the
// presence check happens first to match the log engine's contract.
func (e *Engine) Remove(key string) error {
	err := e.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(key)) == nil {
			return errKeyNotFound
		}
		return b.Delete([]byte(key))
	})

	if stdErrors.Is(err, errKeyNotFound) {
		return errors.NewKeyNotFoundError(key)
	}
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to remove key")
	}
	return nil
}

var errKeyNotFound = stdErrors.New("key not found")

// Clone returns the same handle: bbolt.DB already serializes readers and
// writers internally, so there is nothing per-connection to isolate.
func (e *Engine) Clone() kvengine.Engine {
	return e
}

// Close closes the underlying bbolt database.
func (e *Engine) Close() error {
	return e.db.Close()
}

var _ kvengine.Engine = (*Engine)(nil)
