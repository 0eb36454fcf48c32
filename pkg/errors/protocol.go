package errors

// ProtocolError is a specialized error type for the wire framing between
// client and server: malformed length prefixes and payloads that fail to
// decode into the expected request or response shape.
type ProtocolError struct {
	*baseError
	remoteAddr string
}

// NewProtocolError creates a new protocol-specific error.
func NewProtocolError(err error, code ErrorCode, msg string) *ProtocolError {
	return &ProtocolError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the ProtocolError type.
func (pe *ProtocolError) WithMessage(msg string) *ProtocolError {
	pe.baseError.WithMessage(msg)
	return pe
}

// WithCode sets the error code while preserving the ProtocolError type.
func (pe *ProtocolError) WithCode(code ErrorCode) *ProtocolError {
	pe.baseError.WithCode(code)
	return pe
}

// WithDetail adds contextual information while maintaining the ProtocolError type.
func (pe *ProtocolError) WithDetail(key string, value any) *ProtocolError {
	pe.baseError.WithDetail(key, value)
	return pe
}

// WithRemoteAddr records which peer the malformed frame came from.
func (pe *ProtocolError) WithRemoteAddr(addr string) *ProtocolError {
	pe.remoteAddr = addr
	return pe
}

// RemoteAddr returns the peer address associated with the error, if any.
func (pe *ProtocolError) RemoteAddr() string {
	return pe.remoteAddr
}

// NewFramingError wraps a failure to read a complete frame: a truncated
// length prefix, or a payload shorter than its length prefix announced.
func NewFramingError(cause error) *ProtocolError {
	return NewProtocolError(cause, ErrorCodeProtocolFraming, "failed to read complete frame")
}

// NewDecodeError wraps a failure to decode a frame payload.
func NewDecodeError(cause error, msg string) *ProtocolError {
	return NewProtocolError(cause, ErrorCodeProtocolDecode, msg)
}
