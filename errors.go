package uistream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode error")

	// ErrInvalidJSON indicates a payload that is not a JSON object.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrMissingType indicates a payload without a string "type" field.
	ErrMissingType = errors.New("missing chunk type")

	// ErrUnknownChunkType indicates a type tag with no registered variant.
	ErrUnknownChunkType = errors.New("unknown chunk type")

	// ErrInvalidChunk indicates a payload whose fields do not fit its variant.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// DecodeError reports a payload that could not be turned into a Chunk.
type DecodeError struct {
	Type    string // chunk type tag, empty when it could not be read
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("decode chunk: %v", e.Err)
	}
	return fmt.Sprintf("decode %q chunk: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
