// Package json decodes and encodes UI message chunks and messages.
package json

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/uistream"
)

// Interface compliance check.
var _ uistream.ChunkDecoder = (*Decoder)(nil)

// Factory builds a chunk from a raw JSON payload.
type Factory func(payload []byte) (uistream.Chunk, error)

// Decoder maps JSON payloads to chunk variants. Caller-registered factories
// are consulted before the built-in table.
type Decoder struct {
	extra map[string]Factory
}

// NewDecoder returns a Decoder with only the built-in chunk types.
func NewDecoder() *Decoder {
	return &Decoder{extra: make(map[string]Factory)}
}

// Register maps chunkType to f. A registered type takes precedence over a
// built-in type with the same tag, including "data-" tags.
func (d *Decoder) Register(chunkType string, f Factory) {
	d.extra[chunkType] = f
}

// Decode parses one event payload. Failures are *uistream.DecodeError.
func (d *Decoder) Decode(payload string) (uistream.Chunk, error) {
	data := []byte(payload)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("payload is null")
		}
		return nil, &uistream.DecodeError{Payload: payload, Err: fmt.Errorf("%w: %v", uistream.ErrInvalidJSON, err)}
	}

	var chunkType string
	if raw, ok := fields["type"]; !ok || json.Unmarshal(raw, &chunkType) != nil || chunkType == "" {
		return nil, &uistream.DecodeError{Payload: payload, Err: uistream.ErrMissingType}
	}

	if f, ok := d.extra[chunkType]; ok {
		c, err := f(data)
		if err != nil {
			return nil, invalid(chunkType, payload, err)
		}
		return c, nil
	}

	if uistream.IsDataType(chunkType) {
		return decodeData(chunkType, fields), nil
	}

	kind, ok := builtin[chunkType]
	if !ok {
		return nil, &uistream.DecodeError{Type: chunkType, Payload: payload, Err: uistream.ErrUnknownChunkType}
	}
	for _, name := range kind.required {
		if !present(fields[name]) {
			return nil, invalid(chunkType, payload, fmt.Errorf("missing field %q", name))
		}
	}
	c, err := kind.decode(data)
	if err != nil {
		return nil, invalid(chunkType, payload, err)
	}
	return c, nil
}

func invalid(chunkType, payload string, err error) error {
	var de *uistream.DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &uistream.DecodeError{
		Type:    chunkType,
		Payload: payload,
		Err:     fmt.Errorf("%w: %w", uistream.ErrInvalidChunk, err),
	}
}

// decodeData builds a data chunk straight from the payload fields. Fields of
// an unexpected shape are dropped rather than rejected.
func decodeData(chunkType string, fields map[string]json.RawMessage) uistream.DataChunk {
	c := uistream.DataChunk{
		Type:             chunkType,
		Data:             fields["data"],
		ProviderMetadata: fields["providerMetadata"],
	}
	if raw, ok := fields["id"]; ok {
		_ = json.Unmarshal(raw, &c.ID)
	}
	if raw, ok := fields["transient"]; ok {
		var transient bool
		if json.Unmarshal(raw, &transient) == nil {
			c.Transient = &transient
		}
	}
	return c
}

type chunkKind struct {
	required []string
	decode   func(data []byte) (uistream.Chunk, error)
}

var builtin = map[string]chunkKind{
	uistream.ChunkTypeStart:               {nil, decodeAs[uistream.StartChunk]},
	uistream.ChunkTypeFinish:              {nil, decodeAs[uistream.FinishChunk]},
	uistream.ChunkTypeAbort:               {nil, decodeAs[uistream.AbortChunk]},
	uistream.ChunkTypeStartStep:           {nil, decodeAs[uistream.StartStepChunk]},
	uistream.ChunkTypeFinishStep:          {nil, decodeAs[uistream.FinishStepChunk]},
	uistream.ChunkTypeTextStart:           {nil, decodeAs[uistream.TextStartChunk]},
	uistream.ChunkTypeTextDelta:           {[]string{"delta"}, decodeAs[uistream.TextDeltaChunk]},
	uistream.ChunkTypeTextEnd:             {nil, decodeAs[uistream.TextEndChunk]},
	uistream.ChunkTypeReasoningStart:      {nil, decodeAs[uistream.ReasoningStartChunk]},
	uistream.ChunkTypeReasoningDelta:      {[]string{"delta"}, decodeAs[uistream.ReasoningDeltaChunk]},
	uistream.ChunkTypeReasoningEnd:        {nil, decodeAs[uistream.ReasoningEndChunk]},
	uistream.ChunkTypeToolInputStart:      {[]string{"toolCallId", "toolName"}, decodeAs[uistream.ToolInputStartChunk]},
	uistream.ChunkTypeToolInputDelta:      {[]string{"toolCallId", "inputTextDelta"}, decodeAs[uistream.ToolInputDeltaChunk]},
	uistream.ChunkTypeToolInputAvailable:  {[]string{"toolCallId", "toolName"}, decodeAs[uistream.ToolInputAvailableChunk]},
	uistream.ChunkTypeToolInputError:      {[]string{"toolCallId", "toolName", "errorText"}, decodeAs[uistream.ToolInputErrorChunk]},
	uistream.ChunkTypeToolOutputAvailable: {[]string{"toolCallId"}, decodeAs[uistream.ToolOutputAvailableChunk]},
	uistream.ChunkTypeToolOutputError:     {[]string{"toolCallId", "errorText"}, decodeAs[uistream.ToolOutputErrorChunk]},
	uistream.ChunkTypeSourceURL:           {[]string{"url"}, decodeAs[uistream.SourceURLChunk]},
	uistream.ChunkTypeSourceDocument:      {[]string{"documentId"}, decodeAs[uistream.SourceDocumentChunk]},
	uistream.ChunkTypeFile:                {[]string{"contentType"}, decodeAs[uistream.FileChunk]},
	uistream.ChunkTypeMessageMetadata:     {nil, decodeAs[uistream.MessageMetadataChunk]},
	uistream.ChunkTypeError:               {[]string{"errorText"}, decodeAs[uistream.ErrorChunk]},
}

func decodeAs[T uistream.Chunk](data []byte) (uistream.Chunk, error) {
	var c T
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// present reports whether raw holds a non-null JSON value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
