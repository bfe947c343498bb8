// Package sse reads server-sent event streams carrying UI message chunks.
package sse

import (
	"strings"

	"github.com/fwojciec/uistream"
)

// MaxLineSize is the longest line a Reader accepts.
const MaxLineSize = 1 << 20

// ParseLine interprets one transport line. Only non-empty "data" fields
// produce an event; blank lines, comments, other fields and lines that are
// not "field: value" are ignored.
func ParseLine(line string) (uistream.Event, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ":") {
		return uistream.Event{}, false
	}
	field, value, ok := strings.Cut(line, ":")
	if !ok || strings.TrimSpace(field) != "data" {
		return uistream.Event{}, false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return uistream.Event{}, false
	}
	return uistream.Event{Data: value}, true
}

type readerState int

const (
	stateStreaming readerState = iota
	stateDone                  // sentinel seen or source exhausted
	stateFailed                // source returned an error
	stateClosed                // Close called before a terminal state
)
