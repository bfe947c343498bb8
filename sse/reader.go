package sse

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fwojciec/uistream"
)

// Interface compliance check.
var _ uistream.EventStream = (*Reader)(nil)

// Reader implements [uistream.EventStream] over a line-delimited byte
// stream such as an HTTP response body.
type Reader struct {
	src     io.Reader
	scanner *bufio.Scanner
	state   readerState
	err     error
}

// NewReader returns a Reader consuming r. If r is an io.Closer, Close
// closes it.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Reader{src: r, scanner: scanner}
}

// Next returns the next data event. It returns io.EOF when the source is
// exhausted or the end-of-stream sentinel is read; nothing after the
// sentinel is consumed.
func (r *Reader) Next() (uistream.Event, error) {
	switch r.state {
	case stateDone:
		return uistream.Event{}, io.EOF
	case stateFailed:
		return uistream.Event{}, r.err
	case stateClosed:
		return uistream.Event{}, fmt.Errorf("sse: %w", uistream.ErrStreamClosed)
	}

	for r.scanner.Scan() {
		evt, ok := ParseLine(r.scanner.Text())
		if !ok {
			continue
		}
		if evt.Done() {
			r.state = stateDone
			return uistream.Event{}, io.EOF
		}
		return evt, nil
	}
	if err := r.scanner.Err(); err != nil {
		r.state = stateFailed
		r.err = fmt.Errorf("sse: %w", err)
		return uistream.Event{}, r.err
	}
	r.state = stateDone
	return uistream.Event{}, io.EOF
}

// Close releases the underlying source.
func (r *Reader) Close() error {
	if r.state == stateStreaming {
		r.state = stateClosed
	}
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
