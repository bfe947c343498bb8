package uistream

import "encoding/json"

// TextState is the lifecycle state of a text or reasoning part. The zero
// value means no state is reported.
type TextState string

const (
	TextStateStreaming TextState = "streaming"
	TextStateDone      TextState = "done"
)

// ToolState is the lifecycle state of a tool part.
type ToolState string

const (
	ToolStateInputStreaming  ToolState = "input-streaming"
	ToolStateInputAvailable  ToolState = "input-available"
	ToolStateOutputAvailable ToolState = "output-available"
	ToolStateOutputError     ToolState = "output-error"
)

// Part type tags for the fixed-name part variants.
const (
	PartTypeText           = "text"
	PartTypeReasoning      = "reasoning"
	PartTypeDynamicTool    = "dynamic-tool"
	PartTypeSourceURL      = "source-url"
	PartTypeSourceDocument = "source-document"
	PartTypeFile           = "file"
	PartTypeData           = "data"
	PartTypeStepStart      = "step-start"

	// ToolPartTypePrefix prefixes the tool name in static tool part tags.
	ToolPartTypePrefix = "tool-"
)

// Part is a sealed interface over the renderable units of a Message.
// The unexported marker method prevents external implementations.
type Part interface {
	PartType() string
	part()
}

type TextPart struct {
	Text             string
	State            TextState
	ProviderMetadata json.RawMessage
}

func (TextPart) PartType() string { return PartTypeText }
func (TextPart) part()            {}

type ReasoningPart struct {
	Text             string
	State            TextState
	ProviderMetadata json.RawMessage
}

func (ReasoningPart) PartType() string { return PartTypeReasoning }
func (ReasoningPart) part()            {}

// ToolPart is a tool call whose tool is statically known. Its tag embeds
// the tool name.
type ToolPart struct {
	ToolCallID       string
	ToolName         string
	State            ToolState
	Args             json.RawMessage
	Result           json.RawMessage
	ErrorText        string
	ProviderExecuted *bool
}

func (p ToolPart) PartType() string { return ToolPartTypePrefix + p.ToolName }
func (ToolPart) part()              {}

// DynamicToolPart is a tool call for a tool unknown ahead of time.
type DynamicToolPart struct {
	ToolCallID       string
	ToolName         string
	State            ToolState
	Input            json.RawMessage
	Output           json.RawMessage
	ErrorText        string
	Preliminary      *bool
	ProviderExecuted *bool
}

func (DynamicToolPart) PartType() string { return PartTypeDynamicTool }
func (DynamicToolPart) part()            {}

type SourceURLPart struct {
	SourceID         string
	URL              string
	Title            *string
	ProviderMetadata json.RawMessage
}

func (SourceURLPart) PartType() string { return PartTypeSourceURL }
func (SourceURLPart) part()            {}

type SourceDocumentPart struct {
	SourceID         string
	Title            *string
	Content          *string
	ProviderMetadata json.RawMessage
}

func (SourceDocumentPart) PartType() string { return PartTypeSourceDocument }
func (SourceDocumentPart) part()            {}

// FilePart references file content by URL. Inline content is resolved to a
// base64 data URL.
type FilePart struct {
	MediaType        string
	Filename         string
	URL              string
	ProviderMetadata json.RawMessage
}

func (FilePart) PartType() string { return PartTypeFile }
func (FilePart) part()            {}

// DataPart carries an application-defined payload. Type holds the
// originating "data-<name>" tag; an empty Type reports as "data".
type DataPart struct {
	Type string
	ID   string
	Data json.RawMessage
}

func (p DataPart) PartType() string {
	if p.Type == "" {
		return PartTypeData
	}
	return p.Type
}
func (DataPart) part() {}

// StepStartPart marks the beginning of a step.
type StepStartPart struct{}

func (StepStartPart) PartType() string { return PartTypeStepStart }
func (StepStartPart) part()            {}

// ToolName returns the tool name of a static or dynamic tool part.
func ToolName(p Part) (string, bool) {
	switch p := p.(type) {
	case ToolPart:
		return p.ToolName, true
	case DynamicToolPart:
		return p.ToolName, true
	default:
		return "", false
	}
}

// Interface compliance checks.
var (
	_ Part = TextPart{}
	_ Part = ReasoningPart{}
	_ Part = ToolPart{}
	_ Part = DynamicToolPart{}
	_ Part = SourceURLPart{}
	_ Part = SourceDocumentPart{}
	_ Part = FilePart{}
	_ Part = DataPart{}
	_ Part = StepStartPart{}
)
