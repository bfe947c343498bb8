package uistream

import (
	"encoding/json"
	"strings"
)

// Chunk type tags as they appear on the wire.
const (
	ChunkTypeStart               = "start"
	ChunkTypeFinish              = "finish"
	ChunkTypeAbort               = "abort"
	ChunkTypeStartStep           = "start-step"
	ChunkTypeFinishStep          = "finish-step"
	ChunkTypeTextStart           = "text-start"
	ChunkTypeTextDelta           = "text-delta"
	ChunkTypeTextEnd             = "text-end"
	ChunkTypeReasoningStart      = "reasoning-start"
	ChunkTypeReasoningDelta      = "reasoning-delta"
	ChunkTypeReasoningEnd        = "reasoning-end"
	ChunkTypeToolInputStart      = "tool-input-start"
	ChunkTypeToolInputDelta      = "tool-input-delta"
	ChunkTypeToolInputAvailable  = "tool-input-available"
	ChunkTypeToolInputError      = "tool-input-error"
	ChunkTypeToolOutputAvailable = "tool-output-available"
	ChunkTypeToolOutputError     = "tool-output-error"
	ChunkTypeSourceURL           = "source-url"
	ChunkTypeSourceDocument      = "source-document"
	ChunkTypeFile                = "file"
	ChunkTypeMessageMetadata     = "message-metadata"
	ChunkTypeError               = "error"

	// DataTypePrefix marks application-defined data chunks ("data-<name>").
	DataTypePrefix = "data-"
)

// Chunk is a sealed interface over the closed set of stream chunk variants.
// The unexported marker method prevents external implementations.
type Chunk interface {
	ChunkType() string
	chunk()
}

// StartChunk opens a message. Non-empty fields overwrite the accumulator's
// message id and metadata.
type StartChunk struct {
	MessageID       string          `json:"messageId,omitempty"`
	MessageMetadata json.RawMessage `json:"messageMetadata,omitempty"`
}

func (StartChunk) ChunkType() string { return ChunkTypeStart }
func (StartChunk) chunk()            {}

// FinishChunk closes a message.
type FinishChunk struct {
	MessageMetadata json.RawMessage `json:"messageMetadata,omitempty"`
}

func (FinishChunk) ChunkType() string { return ChunkTypeFinish }
func (FinishChunk) chunk()            {}

// AbortChunk signals that generation was cancelled upstream.
type AbortChunk struct {
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (AbortChunk) ChunkType() string { return ChunkTypeAbort }
func (AbortChunk) chunk()            {}

// StartStepChunk marks a step boundary.
type StartStepChunk struct{}

func (StartStepChunk) ChunkType() string { return ChunkTypeStartStep }
func (StartStepChunk) chunk()            {}

// FinishStepChunk marks the end of a step.
type FinishStepChunk struct{}

func (FinishStepChunk) ChunkType() string { return ChunkTypeFinishStep }
func (FinishStepChunk) chunk()            {}

type TextStartChunk struct {
	ID               string          `json:"id"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (TextStartChunk) ChunkType() string { return ChunkTypeTextStart }
func (TextStartChunk) chunk()            {}

type TextDeltaChunk struct {
	ID               string          `json:"id"`
	Delta            string          `json:"delta"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (TextDeltaChunk) ChunkType() string { return ChunkTypeTextDelta }
func (TextDeltaChunk) chunk()            {}

type TextEndChunk struct {
	ID               string          `json:"id"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (TextEndChunk) ChunkType() string { return ChunkTypeTextEnd }
func (TextEndChunk) chunk()            {}

type ReasoningStartChunk struct {
	ID               string          `json:"id"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (ReasoningStartChunk) ChunkType() string { return ChunkTypeReasoningStart }
func (ReasoningStartChunk) chunk()            {}

type ReasoningDeltaChunk struct {
	ID               string          `json:"id"`
	Delta            string          `json:"delta"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (ReasoningDeltaChunk) ChunkType() string { return ChunkTypeReasoningDelta }
func (ReasoningDeltaChunk) chunk()            {}

type ReasoningEndChunk struct {
	ID               string          `json:"id"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (ReasoningEndChunk) ChunkType() string { return ChunkTypeReasoningEnd }
func (ReasoningEndChunk) chunk()            {}

// ToolInputStartChunk begins a tool call. It replaces any existing record
// with the same call id.
type ToolInputStartChunk struct {
	ToolCallID       string          `json:"toolCallId"`
	ToolName         string          `json:"toolName"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
	Dynamic          *bool           `json:"dynamic,omitempty"`
}

func (ToolInputStartChunk) ChunkType() string { return ChunkTypeToolInputStart }
func (ToolInputStartChunk) chunk()            {}

// ToolInputDeltaChunk carries a fragment of a tool call's raw input text.
type ToolInputDeltaChunk struct {
	ToolCallID     string `json:"toolCallId"`
	InputTextDelta string `json:"inputTextDelta"`
}

func (ToolInputDeltaChunk) ChunkType() string { return ChunkTypeToolInputDelta }
func (ToolInputDeltaChunk) chunk()            {}

// ToolInputAvailableChunk carries the fully parsed tool input.
type ToolInputAvailableChunk struct {
	ToolCallID       string          `json:"toolCallId"`
	ToolName         string          `json:"toolName"`
	Input            json.RawMessage `json:"input,omitempty"`
	ProviderExecuted *bool           `json:"providerExecuted,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
	Dynamic          *bool           `json:"dynamic,omitempty"`
}

func (ToolInputAvailableChunk) ChunkType() string { return ChunkTypeToolInputAvailable }
func (ToolInputAvailableChunk) chunk()            {}

// ToolInputErrorChunk reports that the tool input could not be produced.
type ToolInputErrorChunk struct {
	ToolCallID       string          `json:"toolCallId"`
	ToolName         string          `json:"toolName"`
	Input            json.RawMessage `json:"input,omitempty"`
	ProviderExecuted *bool           `json:"providerExecuted,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
	Dynamic          *bool           `json:"dynamic,omitempty"`
	ErrorText        string          `json:"errorText"`
}

func (ToolInputErrorChunk) ChunkType() string { return ChunkTypeToolInputError }
func (ToolInputErrorChunk) chunk()            {}

// ToolOutputAvailableChunk carries a tool result. Preliminary results may be
// followed by further outputs for the same call.
type ToolOutputAvailableChunk struct {
	ToolCallID       string          `json:"toolCallId"`
	Output           json.RawMessage `json:"output,omitempty"`
	ProviderExecuted *bool           `json:"providerExecuted,omitempty"`
	Dynamic          *bool           `json:"dynamic,omitempty"`
	Preliminary      *bool           `json:"preliminary,omitempty"`
}

func (ToolOutputAvailableChunk) ChunkType() string { return ChunkTypeToolOutputAvailable }
func (ToolOutputAvailableChunk) chunk()            {}

// ToolOutputErrorChunk reports a failed tool execution.
type ToolOutputErrorChunk struct {
	ToolCallID       string `json:"toolCallId"`
	ErrorText        string `json:"errorText"`
	ProviderExecuted *bool  `json:"providerExecuted,omitempty"`
	Dynamic          *bool  `json:"dynamic,omitempty"`
	Preliminary      *bool  `json:"preliminary,omitempty"`
}

func (ToolOutputErrorChunk) ChunkType() string { return ChunkTypeToolOutputError }
func (ToolOutputErrorChunk) chunk()            {}

// SourceURLChunk references a URL source. When SourceID is empty the
// accumulator derives one from the part's position.
type SourceURLChunk struct {
	SourceID         string          `json:"sourceId,omitempty"`
	URL              string          `json:"url"`
	Title            *string         `json:"title,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (SourceURLChunk) ChunkType() string { return ChunkTypeSourceURL }
func (SourceURLChunk) chunk()            {}

// SourceDocumentChunk references a document source by its own id.
type SourceDocumentChunk struct {
	DocumentID       string          `json:"documentId"`
	Title            *string         `json:"title,omitempty"`
	Content          *string         `json:"content,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (SourceDocumentChunk) ChunkType() string { return ChunkTypeSourceDocument }
func (SourceDocumentChunk) chunk()            {}

// FileChunk carries inline binary content. Data is base64 on the wire.
type FileChunk struct {
	Filename         string          `json:"filename,omitempty"`
	ContentType      string          `json:"contentType"`
	Data             []byte          `json:"data"`
	Size             *int            `json:"size,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (FileChunk) ChunkType() string { return ChunkTypeFile }
func (FileChunk) chunk()            {}

// MessageMetadataChunk replaces the message metadata.
type MessageMetadataChunk struct {
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

func (MessageMetadataChunk) ChunkType() string { return ChunkTypeMessageMetadata }
func (MessageMetadataChunk) chunk()            {}

// ErrorChunk is an in-band error. It becomes message state, not a Go error.
type ErrorChunk struct {
	ErrorText string `json:"errorText"`
}

func (ErrorChunk) ChunkType() string { return ChunkTypeError }
func (ErrorChunk) chunk()            {}

// DataChunk is an application-defined payload tagged "data-<name>".
type DataChunk struct {
	Type             string          `json:"type"`
	ID               string          `json:"id,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	Transient        *bool           `json:"transient,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

// ChunkType returns the normalized "data-" tag.
func (c DataChunk) ChunkType() string { return NormalizeDataType(c.Type) }
func (DataChunk) chunk()              {}

// NewDataChunk returns a DataChunk whose tag carries the "data-" prefix.
func NewDataChunk(dataType string, data json.RawMessage) DataChunk {
	return DataChunk{Type: NormalizeDataType(dataType), Data: data}
}

// NormalizeDataType prefixes dataType with "data-" unless already present.
func NormalizeDataType(dataType string) string {
	if strings.HasPrefix(dataType, DataTypePrefix) {
		return dataType
	}
	return DataTypePrefix + dataType
}

// IsDataType reports whether tag names an application-defined data chunk.
func IsDataType(tag string) bool {
	return strings.HasPrefix(tag, DataTypePrefix)
}

// Interface compliance checks.
var (
	_ Chunk = StartChunk{}
	_ Chunk = FinishChunk{}
	_ Chunk = AbortChunk{}
	_ Chunk = StartStepChunk{}
	_ Chunk = FinishStepChunk{}
	_ Chunk = TextStartChunk{}
	_ Chunk = TextDeltaChunk{}
	_ Chunk = TextEndChunk{}
	_ Chunk = ReasoningStartChunk{}
	_ Chunk = ReasoningDeltaChunk{}
	_ Chunk = ReasoningEndChunk{}
	_ Chunk = ToolInputStartChunk{}
	_ Chunk = ToolInputDeltaChunk{}
	_ Chunk = ToolInputAvailableChunk{}
	_ Chunk = ToolInputErrorChunk{}
	_ Chunk = ToolOutputAvailableChunk{}
	_ Chunk = ToolOutputErrorChunk{}
	_ Chunk = SourceURLChunk{}
	_ Chunk = SourceDocumentChunk{}
	_ Chunk = FileChunk{}
	_ Chunk = MessageMetadataChunk{}
	_ Chunk = ErrorChunk{}
	_ Chunk = DataChunk{}
)
