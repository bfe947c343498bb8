package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/uistream"
)

// MarshalChunk encodes c in its wire form, with the "type" tag first.
func MarshalChunk(c uistream.Chunk) ([]byte, error) {
	if dc, ok := c.(uistream.DataChunk); ok {
		dc.Type = dc.ChunkType()
		return json.Marshal(dc)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s chunk: %w", c.ChunkType(), err)
	}
	tag, err := json.Marshal(c.ChunkType())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if !bytes.Equal(body, []byte("{}")) {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}
