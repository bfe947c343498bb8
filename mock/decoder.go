package mock

import "github.com/fwojciec/uistream"

// Interface compliance check.
var _ uistream.ChunkDecoder = (*ChunkDecoder)(nil)

// ChunkDecoder is a test double for uistream.ChunkDecoder.
// Set DecodeFn before calling Decode.
type ChunkDecoder struct {
	DecodeFn func(payload string) (uistream.Chunk, error)
}

// Decode delegates to DecodeFn.
func (d *ChunkDecoder) Decode(payload string) (uistream.Chunk, error) {
	return d.DecodeFn(payload)
}
