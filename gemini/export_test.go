package gemini

import (
	"context"
	"iter"

	"github.com/fwojciec/uistream"
	"google.golang.org/genai"
)

// NewStreamFromIter exposes the transcoding stream for tests.
func NewStreamFromIter(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error], messageID string) uistream.EventStream {
	return newStream(ctx, seq, messageID)
}
