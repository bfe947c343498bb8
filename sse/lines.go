package sse

import (
	"fmt"
	"io"
	"iter"

	"github.com/fwojciec/uistream"
)

// Interface compliance check.
var _ uistream.EventStream = (*Lines)(nil)

// Lines implements [uistream.EventStream] over a sequence of already split
// lines. The sequence is pulled one line at a time.
type Lines struct {
	next  func() (string, bool)
	stop  func()
	state readerState
}

// NewLines returns a Lines stream pulling from seq.
func NewLines(seq iter.Seq[string]) *Lines {
	next, stop := iter.Pull(seq)
	return &Lines{next: next, stop: stop}
}

// Next returns the next data event, or io.EOF once the sequence ends or
// the end-of-stream sentinel is read.
func (l *Lines) Next() (uistream.Event, error) {
	switch l.state {
	case stateDone:
		return uistream.Event{}, io.EOF
	case stateClosed:
		return uistream.Event{}, fmt.Errorf("sse: %w", uistream.ErrStreamClosed)
	}

	for {
		line, ok := l.next()
		if !ok {
			l.state = stateDone
			return uistream.Event{}, io.EOF
		}
		evt, ok := ParseLine(line)
		if !ok {
			continue
		}
		if evt.Done() {
			l.state = stateDone
			l.stop()
			return uistream.Event{}, io.EOF
		}
		return evt, nil
	}
}

// Close stops the underlying sequence.
func (l *Lines) Close() error {
	if l.state == stateStreaming {
		l.state = stateClosed
	}
	l.stop()
	return nil
}
