package errors

// EngineError is a specialized error type for the storage engine's command
// taxonomy: missing keys on remove, index entries pointing at the wrong
// command kind, and command/record serialization failures.
type EngineError struct {
	*baseError
	key string
}

// NewEngineError creates a new engine-specific error.
func NewEngineError(err error, code ErrorCode, msg string) *EngineError {
	return &EngineError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the EngineError type.
func (ee *EngineError) WithMessage(msg string) *EngineError {
	ee.baseError.WithMessage(msg)
	return ee
}

// WithCode sets the error code while preserving the EngineError type.
func (ee *EngineError) WithCode(code ErrorCode) *EngineError {
	ee.baseError.WithCode(code)
	return ee
}

// WithDetail adds contextual information while maintaining the EngineError type.
func (ee *EngineError) WithDetail(key string, value any) *EngineError {
	ee.baseError.WithDetail(key, value)
	return ee
}

// WithKey records which key was being processed when the error occurred.
func (ee *EngineError) WithKey(key string) *EngineError {
	ee.key = key
	return ee
}

// Key returns the key that was being processed when the error occurred.
func (ee *EngineError) Key() string {
	return ee.key
}

// KeyNotFoundMessage is the exact message NewKeyNotFoundError uses. The
// wire protocol carries only a plain error string (see the response types
// in internal/protocol), so a client distinguishing a missing-key remove from any
// other failure compares against this constant rather than the error code,
// which doesn't survive the round trip.
const KeyNotFoundMessage = "key not found"

// NewKeyNotFoundError creates the error a remove returns when its target key
// has no entry in the index.
func NewKeyNotFoundError(key string) *EngineError {
	return NewEngineError(nil, ErrorCodeKeyNotFound, KeyNotFoundMessage).WithKey(key)
}

// NewUnexpectedCommandTypeError creates the error returned when the index
// points at a log record that decodes to something other than a Set.
func NewUnexpectedCommandTypeError(key string) *EngineError {
	return NewEngineError(nil, ErrorCodeUnexpectedCommandType, "unexpected command type at indexed position").
		WithKey(key)
}

// NewSerdeError wraps a command encode/decode failure.
func NewSerdeError(cause error, msg string) *EngineError {
	return NewEngineError(cause, ErrorCodeSerde, msg)
}

// NewStringError wraps an opaque error message received from a peer, the
// way a client surfaces a server-reported failure it cannot classify further.
func NewStringError(msg string) *EngineError {
	return NewEngineError(nil, ErrorCodeStringError, msg)
}

// NewEngineMismatchError creates the error returned when the engine recorded
// on a previous run does not match the one requested for this run.
func NewEngineMismatchError(requested, recorded string) *EngineError {
	return NewEngineError(nil, ErrorCodeEngineMismatch, "data directory was created by a different engine").
		WithDetail("requested", requested).
		WithDetail("recorded", recorded)
}
