package uistream

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
)

// AbortedErrorText is the terminal error recorded for an abort chunk.
const AbortedErrorText = "Generation was aborted"

// ErrorTextPrefix prefixes the synthesized text part for a terminal error.
const ErrorTextPrefix = "Error: "

// unknownToolCallID stands in for tool calls that arrived without an id.
const unknownToolCallID = "unknown"

// AccumulatorOption configures an Accumulator.
type AccumulatorOption func(*Accumulator)

// WithMessageID sets the message id used until a start chunk supplies one.
// Without it a random UUID is chosen once per Accumulator.
func WithMessageID(id string) AccumulatorOption {
	return func(a *Accumulator) {
		a.defaultID = id
	}
}

// Accumulator folds a chunk sequence into a Message. It is single-owner:
// independent streams need independent instances.
type Accumulator struct {
	defaultID string
	st        state
}

// NewAccumulator returns an Accumulator ready to process a new message.
func NewAccumulator(opts ...AccumulatorOption) *Accumulator {
	a := &Accumulator{}
	for _, opt := range opts {
		opt(a)
	}
	if a.defaultID == "" {
		a.defaultID = uuid.NewString()
	}
	a.Reset()
	return a
}

// Process applies one chunk to the accumulated state.
func (a *Accumulator) Process(c Chunk) {
	reduce(&a.st, c)
}

// Message materializes the current best-known message. It may be called at
// any point, including mid-stream, and never mutates state.
func (a *Accumulator) Message() Message {
	return materialize(&a.st)
}

// Reset discards all accumulated state. The message id returns to the
// default chosen at construction.
func (a *Accumulator) Reset() {
	a.st = state{
		messageID: a.defaultID,
		role:      RoleAssistant,
		toolCalls: make(map[string]*toolCall),
	}
}

// Run processes every chunk in seq and materializes the result.
func (a *Accumulator) Run(seq iter.Seq[Chunk]) Message {
	for c := range seq {
		a.Process(c)
	}
	return a.Message()
}

// state is the accumulator's exclusively owned working set.
type state struct {
	messageID string
	role      Role
	metadata  json.RawMessage

	text      textBuffer
	reasoning textBuffer

	// toolCalls is an arena keyed by call id. Entries are created lazily and
	// never removed.
	toolCalls map[string]*toolCall

	// completed is append-only, in completion order.
	completed []Part

	errorText string
}

// textBuffer holds the single live text or reasoning span.
type textBuffer struct {
	b      strings.Builder
	active bool
}

func (t *textBuffer) start() {
	t.b.Reset()
	t.active = true
}

// appendDelta accumulates into the buffer, treating a delta without a
// preceding start as an implicit start.
func (t *textBuffer) appendDelta(delta string) {
	t.active = true
	t.b.WriteString(delta)
}

// end closes the span and returns its text. ok is false when the span was
// inactive or empty.
func (t *textBuffer) end() (text string, ok bool) {
	text, ok = t.b.String(), t.active && t.b.Len() > 0
	t.b.Reset()
	t.active = false
	return text, ok
}

// streaming returns the live span's text, if any.
func (t *textBuffer) streaming() (string, bool) {
	if !t.active || t.b.Len() == 0 {
		return "", false
	}
	return t.b.String(), true
}

// toolCall is an in-progress tool invocation.
type toolCall struct {
	id               string
	name             string
	args             json.RawMessage
	result           json.RawMessage
	dynamic          bool
	providerExecuted *bool
	preliminary      *bool
	inputText        strings.Builder
	inputError       string
	outputError      string
}

// eligible reports whether the call may emit a completed part.
func (tc *toolCall) eligible() bool {
	return tc.name != "" && present(tc.args)
}

// part synthesizes the tool part for the call's current state.
func (tc *toolCall) part() Part {
	id := tc.id
	if id == "" {
		id = unknownToolCallID
	}
	if tc.dynamic {
		p := DynamicToolPart{
			ToolCallID:       id,
			ToolName:         tc.name,
			Input:            tc.args,
			Preliminary:      tc.preliminary,
			ProviderExecuted: tc.providerExecuted,
		}
		switch {
		case tc.outputError != "":
			p.State = ToolStateOutputError
			p.ErrorText = tc.outputError
		case present(tc.result):
			p.State = ToolStateOutputAvailable
			p.Output = tc.result
		default:
			p.State = ToolStateInputAvailable
			p.ErrorText = tc.inputError
		}
		return p
	}
	p := ToolPart{
		ToolCallID:       id,
		ToolName:         tc.name,
		State:            ToolStateInputAvailable,
		Args:             tc.args,
		Result:           tc.result,
		ProviderExecuted: tc.providerExecuted,
	}
	if present(tc.result) {
		p.State = ToolStateOutputAvailable
	}
	switch {
	case tc.outputError != "":
		p.ErrorText = tc.outputError
	case tc.inputError != "":
		p.ErrorText = tc.inputError
	}
	return p
}

// truthy reports whether raw holds a value other than null, false, zero,
// an empty string, an empty object or an empty array.
func truthy(raw json.RawMessage) bool {
	if !present(raw) {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return v != nil
}

// present reports whether raw holds a non-null JSON value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// complete appends the call's part when it is eligible. Every qualifying
// event appends again; earlier parts for the same call are kept.
func (st *state) complete(tc *toolCall) {
	if tc.eligible() {
		st.add(tc.part())
	}
}

// add appends a private copy of p to the completed parts.
func (st *state) add(p Part) {
	st.completed = append(st.completed, clonePart(p))
}

func reduce(st *state, c Chunk) {
	switch c := c.(type) {
	case StartChunk:
		if c.MessageID != "" {
			st.messageID = c.MessageID
		}
		if truthy(c.MessageMetadata) {
			st.metadata = cloneRaw(c.MessageMetadata)
		}
	case FinishChunk, FinishStepChunk:
		// Hook points; no visible state.
	case AbortChunk:
		st.errorText = AbortedErrorText
	case ErrorChunk:
		st.errorText = c.ErrorText
	case MessageMetadataChunk:
		st.metadata = cloneRaw(c.Metadata)

	case TextStartChunk:
		st.text.start()
	case TextDeltaChunk:
		st.text.appendDelta(c.Delta)
	case TextEndChunk:
		if text, ok := st.text.end(); ok {
			st.add(TextPart{Text: text, State: TextStateDone})
		}
	case ReasoningStartChunk:
		st.reasoning.start()
	case ReasoningDeltaChunk:
		st.reasoning.appendDelta(c.Delta)
	case ReasoningEndChunk:
		if text, ok := st.reasoning.end(); ok {
			st.add(ReasoningPart{Text: text, State: TextStateDone})
		}

	case ToolInputStartChunk:
		st.toolCalls[c.ToolCallID] = &toolCall{
			id:      c.ToolCallID,
			name:    c.ToolName,
			dynamic: flag(c.Dynamic),
		}
	case ToolInputDeltaChunk:
		if tc, ok := st.toolCalls[c.ToolCallID]; ok {
			tc.inputText.WriteString(c.InputTextDelta)
		}
	case ToolInputAvailableChunk:
		tc, ok := st.toolCalls[c.ToolCallID]
		if !ok {
			tc = &toolCall{}
			st.toolCalls[c.ToolCallID] = tc
		}
		tc.id = c.ToolCallID
		tc.name = c.ToolName
		tc.args = cloneRaw(c.Input)
		tc.dynamic = flag(c.Dynamic)
		tc.providerExecuted = clonePtr(c.ProviderExecuted)
	case ToolInputErrorChunk:
		if tc, ok := st.toolCalls[c.ToolCallID]; ok {
			tc.inputError = c.ErrorText
			st.complete(tc)
		}
	case ToolOutputAvailableChunk:
		if tc, ok := st.toolCalls[c.ToolCallID]; ok {
			tc.result = cloneRaw(c.Output)
			tc.preliminary = clonePtr(c.Preliminary)
			st.complete(tc)
		}
	case ToolOutputErrorChunk:
		if tc, ok := st.toolCalls[c.ToolCallID]; ok {
			tc.outputError = c.ErrorText
			st.complete(tc)
		}

	case SourceURLChunk:
		id := c.SourceID
		if id == "" {
			id = fmt.Sprintf("source-%d", len(st.completed))
		}
		st.add(SourceURLPart{
			SourceID:         id,
			URL:              c.URL,
			Title:            c.Title,
			ProviderMetadata: c.ProviderMetadata,
		})
	case SourceDocumentChunk:
		st.add(SourceDocumentPart{
			SourceID:         c.DocumentID,
			Title:            c.Title,
			Content:          c.Content,
			ProviderMetadata: c.ProviderMetadata,
		})
	case FileChunk:
		st.add(FilePart{
			MediaType:        c.ContentType,
			Filename:         c.Filename,
			URL:              DataURL(c.ContentType, c.Data),
			ProviderMetadata: c.ProviderMetadata,
		})
	case DataChunk:
		st.add(DataPart{
			Type: c.ChunkType(),
			ID:   c.ID,
			Data: c.Data,
		})
	case StartStepChunk:
		st.add(StepStartPart{})
	}
}

func materialize(st *state) Message {
	parts := make([]Part, 0, len(st.completed)+3)
	if text, ok := st.text.streaming(); ok {
		parts = append(parts, TextPart{Text: text, State: TextStateStreaming})
	}
	if text, ok := st.reasoning.streaming(); ok {
		parts = append(parts, ReasoningPart{Text: text, State: TextStateStreaming})
	}
	for _, p := range st.completed {
		parts = append(parts, clonePart(p))
	}
	if st.errorText != "" {
		parts = append(parts, TextPart{Text: ErrorTextPrefix + st.errorText})
	}
	return Message{
		ID:       st.messageID,
		Role:     st.role,
		Parts:    parts,
		Metadata: cloneRaw(st.metadata),
	}
}

// DataURL encodes data as a base64 data URL of the given media type.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func flag(b *bool) bool {
	return b != nil && *b
}

// clonePart returns a copy of p sharing no memory with it.
func clonePart(p Part) Part {
	switch p := p.(type) {
	case TextPart:
		p.ProviderMetadata = cloneRaw(p.ProviderMetadata)
		return p
	case ReasoningPart:
		p.ProviderMetadata = cloneRaw(p.ProviderMetadata)
		return p
	case ToolPart:
		p.Args = cloneRaw(p.Args)
		p.Result = cloneRaw(p.Result)
		p.ProviderExecuted = clonePtr(p.ProviderExecuted)
		return p
	case DynamicToolPart:
		p.Input = cloneRaw(p.Input)
		p.Output = cloneRaw(p.Output)
		p.Preliminary = clonePtr(p.Preliminary)
		p.ProviderExecuted = clonePtr(p.ProviderExecuted)
		return p
	case SourceURLPart:
		p.Title = clonePtr(p.Title)
		p.ProviderMetadata = cloneRaw(p.ProviderMetadata)
		return p
	case SourceDocumentPart:
		p.Title = clonePtr(p.Title)
		p.Content = clonePtr(p.Content)
		p.ProviderMetadata = cloneRaw(p.ProviderMetadata)
		return p
	case FilePart:
		p.ProviderMetadata = cloneRaw(p.ProviderMetadata)
		return p
	case DataPart:
		p.Data = cloneRaw(p.Data)
		return p
	}
	return p
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return json.RawMessage(bytes.Clone(raw))
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
