package sse_test

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"data field", `data: {"type":"finish"}`, `{"type":"finish"}`, true},
		{"no space after colon", `data:{"type":"finish"}`, `{"type":"finish"}`, true},
		{"surrounding whitespace", "  data:   [DONE]  \r", "[DONE]", true},
		{"value keeps inner colons", `data: {"url":"https://go.dev"}`, `{"url":"https://go.dev"}`, true},
		{"blank", "", "", false},
		{"whitespace only", "   \t", "", false},
		{"comment", ": keep-alive", "", false},
		{"event field", "event: message", "", false},
		{"id field", "id: 42", "", false},
		{"no colon", "garbage", "", false},
		{"empty data", "data:", "", false},
		{"field is case sensitive", "Data: x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := sse.ParseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Data)
		})
	}
}

func collect(t *testing.T, s uistream.EventStream) []string {
	t.Helper()
	var out []string
	for {
		evt, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, evt.Data)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestReader_Next(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		": comment",
		`data: {"type":"start"}`,
		"",
		"event: ignored",
		`data: {"type":"text-start","id":"0"}`,
		"",
		"data: [DONE]",
		`data: {"type":"after-done"}`,
	}, "\n")

	r := sse.NewReader(strings.NewReader(input))

	assert.Equal(t, []string{`{"type":"start"}`, `{"type":"text-start","id":"0"}`}, collect(t, r))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF, "stream is not restartable")
}

func TestReader_StopsReadingAtSentinel(t *testing.T) {
	t.Parallel()

	// The error would surface if the reader consumed past the sentinel.
	src := io.MultiReader(
		strings.NewReader("data: a\ndata: [DONE]\n"),
		iotest.ErrReader(errors.New("read past sentinel")),
	)
	r := sse.NewReader(src)

	evt, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", evt.Data)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ExhaustedWithoutSentinel(t *testing.T) {
	t.Parallel()

	r := sse.NewReader(strings.NewReader("data: only"))
	assert.Equal(t, []string{"only"}, collect(t, r))
}

func TestReader_SourceError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("connection reset")
	r := sse.NewReader(io.MultiReader(strings.NewReader("data: a\n"), iotest.ErrReader(wantErr)))

	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, wantErr)
	_, err = r.Next()
	assert.ErrorIs(t, err, wantErr, "error is sticky")
}

func TestReader_LongLine(t *testing.T) {
	t.Parallel()

	payload := `{"type":"text-delta","id":"0","delta":"` + strings.Repeat("x", 200*1024) + `"}`
	r := sse.NewReader(strings.NewReader("data: " + payload + "\n"))

	evt, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, payload, evt.Data)
}

func TestReader_Close(t *testing.T) {
	t.Parallel()

	src := &closeRecorder{Reader: strings.NewReader("data: a\ndata: b\n")}
	r := sse.NewReader(src)

	_, err := r.Next()
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.True(t, src.closed)
	_, err = r.Next()
	assert.ErrorIs(t, err, uistream.ErrStreamClosed)
}

func TestLines_Next(t *testing.T) {
	t.Parallel()

	lines := []string{
		"",
		": ping",
		"data: one",
		"retry: 100",
		"data: two",
		"data: [DONE]",
		"data: three",
	}
	l := sse.NewLines(slices.Values(lines))

	assert.Equal(t, []string{"one", "two"}, collect(t, l))
}

func TestLines_DoesNotPullPastSentinel(t *testing.T) {
	t.Parallel()

	var pulled []string
	seq := func(yield func(string) bool) {
		for _, line := range []string{"data: a", "data: [DONE]", "data: b", "data: c"} {
			pulled = append(pulled, line)
			if !yield(line) {
				return
			}
		}
	}
	l := sse.NewLines(seq)

	assert.Equal(t, []string{"a"}, collect(t, l))
	assert.Equal(t, []string{"data: a", "data: [DONE]"}, pulled)
}

func TestLines_Close(t *testing.T) {
	t.Parallel()

	l := sse.NewLines(slices.Values([]string{"data: a", "data: b"}))
	_, err := l.Next()
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, err = l.Next()
	assert.ErrorIs(t, err, uistream.ErrStreamClosed)
}
