package json_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/uistream"
	uistreamjson "github.com/fwojciec/uistream/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDecoder_Decode_BuiltIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		payload string
		want    uistream.Chunk
	}{
		{`{"type":"start","messageId":"m1","messageMetadata":{"k":1}}`, uistream.StartChunk{MessageID: "m1", MessageMetadata: json.RawMessage(`{"k":1}`)}},
		{`{"type":"start"}`, uistream.StartChunk{}},
		{`{"type":"finish"}`, uistream.FinishChunk{}},
		{`{"type":"abort"}`, uistream.AbortChunk{}},
		{`{"type":"start-step"}`, uistream.StartStepChunk{}},
		{`{"type":"finish-step"}`, uistream.FinishStepChunk{}},
		{`{"type":"text-start","id":"0"}`, uistream.TextStartChunk{ID: "0"}},
		{`{"type":"text-delta","id":"0","delta":"Hi"}`, uistream.TextDeltaChunk{ID: "0", Delta: "Hi"}},
		{`{"type":"text-delta","delta":""}`, uistream.TextDeltaChunk{}},
		{`{"type":"text-end","id":"0"}`, uistream.TextEndChunk{ID: "0"}},
		{`{"type":"reasoning-start","id":"r"}`, uistream.ReasoningStartChunk{ID: "r"}},
		{`{"type":"reasoning-delta","id":"r","delta":"hm"}`, uistream.ReasoningDeltaChunk{ID: "r", Delta: "hm"}},
		{`{"type":"reasoning-end","id":"r"}`, uistream.ReasoningEndChunk{ID: "r"}},
		{`{"type":"tool-input-start","toolCallId":"t1","toolName":"search","dynamic":true}`, uistream.ToolInputStartChunk{ToolCallID: "t1", ToolName: "search", Dynamic: ptr(true)}},
		{`{"type":"tool-input-delta","toolCallId":"t1","inputTextDelta":"{\"q\""}`, uistream.ToolInputDeltaChunk{ToolCallID: "t1", InputTextDelta: `{"q"`}},
		{
			`{"type":"tool-input-available","toolCallId":"t1","toolName":"search","input":{"q":"go"},"providerExecuted":false}`,
			uistream.ToolInputAvailableChunk{ToolCallID: "t1", ToolName: "search", Input: json.RawMessage(`{"q":"go"}`), ProviderExecuted: ptr(false)},
		},
		{
			`{"type":"tool-input-error","toolCallId":"t1","toolName":"search","input":"bad","errorText":"parse"}`,
			uistream.ToolInputErrorChunk{ToolCallID: "t1", ToolName: "search", Input: json.RawMessage(`"bad"`), ErrorText: "parse"},
		},
		{
			`{"type":"tool-output-available","toolCallId":"t1","output":[1,2],"preliminary":true}`,
			uistream.ToolOutputAvailableChunk{ToolCallID: "t1", Output: json.RawMessage(`[1,2]`), Preliminary: ptr(true)},
		},
		{`{"type":"tool-output-error","toolCallId":"t1","errorText":"denied"}`, uistream.ToolOutputErrorChunk{ToolCallID: "t1", ErrorText: "denied"}},
		{`{"type":"source-url","url":"https://go.dev","title":"Go"}`, uistream.SourceURLChunk{URL: "https://go.dev", Title: ptr("Go")}},
		{`{"type":"source-document","documentId":"d1","content":"c"}`, uistream.SourceDocumentChunk{DocumentID: "d1", Content: ptr("c")}},
		{`{"type":"file","filename":"a.txt","contentType":"text/plain","data":"aGVsbG8=","size":5}`, uistream.FileChunk{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hello"), Size: ptr(5)}},
		{`{"type":"message-metadata","metadata":{"usage":3}}`, uistream.MessageMetadataChunk{Metadata: json.RawMessage(`{"usage":3}`)}},
		{`{"type":"error","errorText":"boom"}`, uistream.ErrorChunk{ErrorText: "boom"}},
	}

	dec := uistreamjson.NewDecoder()
	for _, tt := range tests {
		t.Run(tt.want.ChunkType(), func(t *testing.T) {
			t.Parallel()
			got, err := dec.Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecoder_Decode_DataChunk(t *testing.T) {
	t.Parallel()

	dec := uistreamjson.NewDecoder()

	got, err := dec.Decode(`{"type":"data-foo","data":7}`)
	require.NoError(t, err)
	assert.Equal(t, uistream.DataChunk{Type: "data-foo", Data: json.RawMessage(`7`)}, got)

	got, err = dec.Decode(`{"type":"data-weather","id":"w1","data":{"t":1},"transient":true}`)
	require.NoError(t, err)
	assert.Equal(t, uistream.DataChunk{Type: "data-weather", ID: "w1", Data: json.RawMessage(`{"t":1}`), Transient: ptr(true)}, got)

	// Fields are not validated for data chunks.
	got, err = dec.Decode(`{"type":"data-odd","id":42,"transient":"yes"}`)
	require.NoError(t, err)
	assert.Equal(t, uistream.DataChunk{Type: "data-odd"}, got)
}

func TestDecoder_Decode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"not json", `{"type":`, uistream.ErrInvalidJSON},
		{"array", `[1,2]`, uistream.ErrInvalidJSON},
		{"string", `"text-delta"`, uistream.ErrInvalidJSON},
		{"null", `null`, uistream.ErrInvalidJSON},
		{"no type", `{"delta":"x"}`, uistream.ErrMissingType},
		{"non-string type", `{"type":3}`, uistream.ErrMissingType},
		{"empty type", `{"type":""}`, uistream.ErrMissingType},
		{"unknown type", `{"type":"bogus"}`, uistream.ErrUnknownChunkType},
		{"missing delta", `{"type":"text-delta","id":"0"}`, uistream.ErrInvalidChunk},
		{"null delta", `{"type":"text-delta","id":"0","delta":null}`, uistream.ErrInvalidChunk},
		{"wrong shape", `{"type":"text-delta","id":"0","delta":5}`, uistream.ErrInvalidChunk},
		{"missing tool call id", `{"type":"tool-output-available","output":1}`, uistream.ErrInvalidChunk},
		{"missing tool name", `{"type":"tool-input-start","toolCallId":"t"}`, uistream.ErrInvalidChunk},
		{"missing error text", `{"type":"error"}`, uistream.ErrInvalidChunk},
		{"bad base64", `{"type":"file","contentType":"a/b","data":"!!"}`, uistream.ErrInvalidChunk},
		{"bad flag", `{"type":"tool-input-start","toolCallId":"t","toolName":"n","dynamic":"yes"}`, uistream.ErrInvalidChunk},
	}

	dec := uistreamjson.NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := dec.Decode(tt.payload)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, uistream.ErrDecode)
			assert.ErrorIs(t, err, tt.want)

			var de *uistream.DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.payload, de.Payload)
		})
	}
}

func TestDecoder_Register(t *testing.T) {
	t.Parallel()

	t.Run("adds a custom type", func(t *testing.T) {
		t.Parallel()
		dec := uistreamjson.NewDecoder()
		dec.Register("reasoning", func(payload []byte) (uistream.Chunk, error) {
			var v struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return uistream.ReasoningDeltaChunk{Delta: v.Text}, nil
		})

		got, err := dec.Decode(`{"type":"reasoning","text":"legacy"}`)
		require.NoError(t, err)
		assert.Equal(t, uistream.ReasoningDeltaChunk{Delta: "legacy"}, got)
	})

	t.Run("takes precedence over built-in", func(t *testing.T) {
		t.Parallel()
		dec := uistreamjson.NewDecoder()
		dec.Register("finish", func([]byte) (uistream.Chunk, error) {
			return uistream.AbortChunk{}, nil
		})
		dec.Register("data-special", func([]byte) (uistream.Chunk, error) {
			return uistream.StartStepChunk{}, nil
		})

		got, err := dec.Decode(`{"type":"finish"}`)
		require.NoError(t, err)
		assert.Equal(t, uistream.AbortChunk{}, got)

		got, err = dec.Decode(`{"type":"data-special","data":1}`)
		require.NoError(t, err)
		assert.Equal(t, uistream.StartStepChunk{}, got)
	})

	t.Run("factory errors are decode errors", func(t *testing.T) {
		t.Parallel()
		dec := uistreamjson.NewDecoder()
		wantErr := errors.New("nope")
		dec.Register("custom", func([]byte) (uistream.Chunk, error) {
			return nil, wantErr
		})

		_, err := dec.Decode(`{"type":"custom"}`)
		assert.ErrorIs(t, err, uistream.ErrDecode)
		assert.ErrorIs(t, err, uistream.ErrInvalidChunk)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("registration does not leak across decoders", func(t *testing.T) {
		t.Parallel()
		a := uistreamjson.NewDecoder()
		a.Register("custom", func([]byte) (uistream.Chunk, error) { return uistream.FinishChunk{}, nil })
		b := uistreamjson.NewDecoder()

		_, err := b.Decode(`{"type":"custom"}`)
		assert.ErrorIs(t, err, uistream.ErrUnknownChunkType)
	})
}

func TestMarshalChunk_RoundTrip(t *testing.T) {
	t.Parallel()

	chunks := []uistream.Chunk{
		uistream.StartChunk{MessageID: "m1", MessageMetadata: json.RawMessage(`{"a":1}`)},
		uistream.StartStepChunk{},
		uistream.TextDeltaChunk{ID: "0", Delta: "Hi"},
		uistream.ToolInputAvailableChunk{ToolCallID: "t1", ToolName: "n", Input: json.RawMessage(`{"x":[1]}`), Dynamic: ptr(true)},
		uistream.ToolOutputErrorChunk{ToolCallID: "t1", ErrorText: "e", Preliminary: ptr(false)},
		uistream.SourceURLChunk{SourceID: "s", URL: "https://go.dev"},
		uistream.FileChunk{ContentType: "image/png", Data: []byte{0x89, 0x50}},
		uistream.DataChunk{Type: "chart", ID: "c1", Data: json.RawMessage(`[1,2]`)},
		uistream.ErrorChunk{ErrorText: "x"},
	}

	dec := uistreamjson.NewDecoder()
	for _, c := range chunks {
		data, err := uistreamjson.MarshalChunk(c)
		require.NoError(t, err)

		got, err := dec.Decode(string(data))
		require.NoError(t, err, string(data))
		if dc, ok := c.(uistream.DataChunk); ok {
			dc.Type = uistream.NormalizeDataType(dc.Type)
			c = dc
		}
		assert.Equal(t, c, got)
	}
}

func TestMarshalChunk_Wire(t *testing.T) {
	t.Parallel()

	data, err := uistreamjson.MarshalChunk(uistream.FinishStepChunk{})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"finish-step"}`, string(data))

	data, err = uistreamjson.MarshalChunk(uistream.TextDeltaChunk{ID: "0", Delta: "a"})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"text-delta","id":"0","delta":"a"}`, string(data))

	data, err = uistreamjson.MarshalChunk(uistream.NewDataChunk("n", json.RawMessage(`1`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"data-n","data":1}`, string(data))
}
