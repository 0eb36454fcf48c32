// Package logrecord defines the command record persisted to the on-disk
// log: a tagged union of Set and Remove, framed with internal/wire so the
// byte offset of each record boundary can always be recovered during replay.
package logrecord

import (
	"io"

	"github.com/wealrain/ignitekv/internal/wire"
)

// Kind distinguishes the two command variants stored in the log.
type Kind string

const (
	KindSet    Kind = "set"
	KindRemove Kind = "remove"
)

// Command is the tagged record written to the log: exactly one of Set or
// Remove.
type Command struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// SetCommand builds a Set{key,value} record.
func SetCommand(key, value string) Command {
	return Command{Kind: KindSet, Key: key, Value: value}
}

// RemoveCommand builds a Remove{key} record.
func RemoveCommand(key string) Command {
	return Command{Kind: KindRemove, Key: key}
}

// IsSet reports whether the command is a Set record.
func (c Command) IsSet() bool { return c.Kind == KindSet }

// IsRemove reports whether the command is a Remove record.
func (c Command) IsRemove() bool { return c.Kind == KindRemove }

// Encode writes cmd to w as one length-prefixed frame and returns the
// number of bytes written.
func Encode(w io.Writer, cmd Command) (int64, error) {
	return wire.WriteFrame(w, cmd)
}

// Decode reads exactly one command record from r, returning the number of
// bytes consumed. io.EOF signals a clean end of the log.
func Decode(r io.Reader) (Command, int64, error) {
	var cmd Command
	n, err := wire.ReadFrame(r, &cmd)
	if err != nil {
		return Command{}, 0, err
	}
	return cmd, n, nil
}
