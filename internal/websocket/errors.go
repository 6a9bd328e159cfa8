package websocket

import "errors"

// Relay-level failures are reported to the originating channel as an error
// frame and never close the channel.
var (
	ErrAuthRequired     = errors.New("not authenticated")
	ErrIdentityMismatch = errors.New("claimed identity does not match session")
)

// ValidationError marks a well-formed frame with an unusable payload
// (missing receiver, empty content).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ProtocolError marks a frame that could not be parsed at all.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return "malformed frame: " + e.Err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
