// Package wire implements the length-prefixed framing shared by the on-disk
// command log and the client/server protocol: an 8-byte big-endian length
// header followed by exactly that many bytes of JSON payload.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/wealrain/ignitekv/pkg/errors"
)

// lenWidth is the size in bytes of the frame length header.
const lenWidth = 8

// WriteFrame marshals v and writes it to w as one length-prefixed frame. It
// returns the total number of bytes written, header included.
func WriteFrame(w io.Writer, v any) (int64, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, errors.NewSerdeError(err, "failed to marshal frame payload")
	}

	header := make([]byte, lenWidth)
	binary.BigEndian.PutUint64(header, uint64(len(payload)))

	if _, err := w.Write(header); err != nil {
		return 0, err
	}
	if _, err := w.Write(payload); err != nil {
		return 0, err
	}

	return int64(lenWidth + len(payload)), nil
}

// ReadFrame reads exactly one length-prefixed frame from r and unmarshals
// its payload into v. It returns the total number of bytes consumed,
// header included. A clean end of stream is reported by returning io.EOF
// unmodified so callers can distinguish "no more frames" from a truncated one.
func ReadFrame(r io.Reader, v any) (int64, error) {
	header := make([]byte, lenWidth)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, errors.NewFramingError(err)
		}
		return 0, err
	}

	size := binary.BigEndian.Uint64(header)
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, errors.NewFramingError(err)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return 0, errors.NewDecodeError(err, "failed to unmarshal frame payload")
	}

	return int64(lenWidth) + int64(size), nil
}
