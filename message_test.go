package uistream_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/uistream"
	"github.com/stretchr/testify/assert"
)

func TestMessage_Text(t *testing.T) {
	t.Parallel()

	msg := uistream.Message{
		Parts: []uistream.Part{
			uistream.TextPart{Text: "Hello, "},
			uistream.ReasoningPart{Text: "ignored"},
			uistream.StepStartPart{},
			uistream.TextPart{Text: "world", State: uistream.TextStateDone},
		},
	}
	assert.Equal(t, "Hello, world", msg.Text())
	assert.Empty(t, uistream.Message{}.Text())
}

func TestNewTextMessage(t *testing.T) {
	t.Parallel()

	msg := uistream.NewTextMessage("u1", uistream.RoleUser, "hi")
	assert.Equal(t, uistream.Message{
		ID:    "u1",
		Role:  uistream.RoleUser,
		Parts: []uistream.Part{uistream.TextPart{Text: "hi"}},
	}, msg)
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, uistream.RoleSystem.Valid())
	assert.True(t, uistream.RoleUser.Valid())
	assert.True(t, uistream.RoleAssistant.Valid())
	assert.False(t, uistream.Role("tool").Valid())
}

func TestPart_PartType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		part uistream.Part
		want string
	}{
		{uistream.TextPart{}, "text"},
		{uistream.ReasoningPart{}, "reasoning"},
		{uistream.ToolPart{ToolName: "weather"}, "tool-weather"},
		{uistream.DynamicToolPart{ToolName: "weather"}, "dynamic-tool"},
		{uistream.SourceURLPart{}, "source-url"},
		{uistream.SourceDocumentPart{}, "source-document"},
		{uistream.FilePart{}, "file"},
		{uistream.DataPart{}, "data"},
		{uistream.DataPart{Type: "data-chart"}, "data-chart"},
		{uistream.StepStartPart{}, "step-start"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.part.PartType())
	}
}

func TestToolName(t *testing.T) {
	t.Parallel()

	name, ok := uistream.ToolName(uistream.ToolPart{ToolName: "a"})
	assert.True(t, ok)
	assert.Equal(t, "a", name)

	name, ok = uistream.ToolName(uistream.DynamicToolPart{ToolName: "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", name)

	_, ok = uistream.ToolName(uistream.TextPart{})
	assert.False(t, ok)
}

func TestNormalizeDataType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "data-foo", uistream.NormalizeDataType("foo"))
	assert.Equal(t, "data-foo", uistream.NormalizeDataType("data-foo"))
	assert.Equal(t, "data-foo", uistream.NormalizeDataType(uistream.NormalizeDataType("foo")))
	assert.True(t, uistream.IsDataType("data-x"))
	assert.False(t, uistream.IsDataType("text-delta"))
}

func TestNewDataChunk(t *testing.T) {
	t.Parallel()

	c := uistream.NewDataChunk("progress", json.RawMessage(`50`))
	assert.Equal(t, "data-progress", c.Type)
	assert.Equal(t, "data-progress", c.ChunkType())
	assert.Equal(t, "data-raw", uistream.DataChunk{Type: "raw"}.ChunkType())
}

func TestDataURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "data:image/png;base64,AAEC", uistream.DataURL("image/png", []byte{0, 1, 2}))
	assert.Equal(t, "data:text/plain;base64,", uistream.DataURL("text/plain", nil))
}

func TestEvent_Done(t *testing.T) {
	t.Parallel()

	assert.True(t, uistream.Event{Data: "[DONE]"}.Done())
	assert.False(t, uistream.Event{Data: `{"type":"finish"}`}.Done())
}
