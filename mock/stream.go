package mock

import (
	"io"

	"github.com/fwojciec/uistream"
)

// Interface compliance check.
var _ uistream.EventStream = (*EventStream)(nil)

// EventStream is a test double for uistream.EventStream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe
// because test code commonly calls defer stream.Close().
type EventStream struct {
	NextFn  func() (uistream.Event, error)
	CloseFn func() error
}

// NewEventStream returns an EventStream yielding one event per payload,
// then io.EOF.
func NewEventStream(payloads ...string) *EventStream {
	i := 0
	return &EventStream{
		NextFn: func() (uistream.Event, error) {
			if i >= len(payloads) {
				return uistream.Event{}, io.EOF
			}
			i++
			return uistream.Event{Data: payloads[i-1]}, nil
		},
	}
}

// Next delegates to NextFn.
func (s *EventStream) Next() (uistream.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *EventStream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
