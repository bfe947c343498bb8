package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/fwojciec/uistream"
	uistreamjson "github.com/fwojciec/uistream/json"
	"google.golang.org/genai"
)

type streamState int

const (
	stateNew streamState = iota
	stateStreaming
	stateFinishing // iterator exhausted, trailing chunks queued
	stateComplete
	stateError
	stateClosed
)

type blockKind int

const (
	blockNone blockKind = iota
	blockText
	blockReasoning
)

// stream implements [uistream.EventStream] by transcoding the genai SDK's
// streaming iterator into UI message chunk payloads.
type stream struct {
	ctx       context.Context
	pull      func() (*genai.GenerateContentResponse, error, bool)
	stop      func()
	state     streamState
	messageID string
	pending   []string

	block   blockKind
	blockID string
	blocks  int
	calls   int
	finish  genai.FinishReason
	usage   *genai.GenerateContentResponseUsageMetadata
	err     error
}

// Interface compliance check.
var _ uistream.EventStream = (*stream)(nil)

func newStream(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error], messageID string) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		ctx:       ctx,
		pull:      next,
		stop:      stop,
		state:     stateNew,
		messageID: messageID,
	}
}

func (s *stream) Next() (uistream.Event, error) {
	for len(s.pending) == 0 {
		switch s.state {
		case stateComplete:
			return uistream.Event{}, io.EOF
		case stateError:
			return uistream.Event{}, s.err
		case stateClosed:
			return uistream.Event{}, fmt.Errorf("gemini: %w", uistream.ErrStreamClosed)
		case stateFinishing:
			s.state = stateComplete
			return uistream.Event{}, io.EOF
		case stateNew:
			s.state = stateStreaming
			s.emit(uistream.StartChunk{MessageID: s.messageID})
			s.emit(uistream.StartStepChunk{})
		case stateStreaming:
			if err := s.ctx.Err(); err != nil {
				return uistream.Event{}, s.fail(err)
			}
			resp, err, ok := s.pull()
			if !ok {
				s.state = stateFinishing
				s.finishStream()
				continue
			}
			if err != nil {
				return uistream.Event{}, s.fail(err)
			}
			s.handle(resp)
		}
		if s.state == stateError {
			return uistream.Event{}, s.err
		}
	}
	data := s.pending[0]
	s.pending = s.pending[1:]
	return uistream.Event{Data: data}, nil
}

func (s *stream) Close() error {
	if s.state != stateComplete && s.state != stateError {
		s.state = stateClosed
	}
	s.pending = nil
	s.stop()
	return nil
}

func (s *stream) fail(err error) error {
	s.state = stateError
	s.err = fmt.Errorf("gemini: %w", err)
	s.pending = nil
	return s.err
}

// emit queues the wire encoding of c.
func (s *stream) emit(c uistream.Chunk) {
	if s.state == stateError {
		return
	}
	data, err := uistreamjson.MarshalChunk(c)
	if err != nil {
		s.fail(err)
		return
	}
	s.pending = append(s.pending, string(data))
}

func (s *stream) handle(resp *genai.GenerateContentResponse) {
	if resp == nil {
		return
	}
	if resp.UsageMetadata != nil {
		s.usage = resp.UsageMetadata
	}
	if len(resp.Candidates) == 0 {
		return
	}
	cand := resp.Candidates[0]
	if cand.FinishReason != "" {
		s.finish = cand.FinishReason
	}
	if cand.Content == nil {
		return
	}
	for _, p := range cand.Content.Parts {
		switch {
		case p.FunctionCall != nil:
			s.closeBlock()
			s.functionCall(p.FunctionCall)
		case p.InlineData != nil:
			s.closeBlock()
			s.emit(uistream.FileChunk{
				ContentType: p.InlineData.MIMEType,
				Data:        p.InlineData.Data,
				Filename:    p.InlineData.DisplayName,
			})
		case p.Text == "":
			// Signature-only parts carry nothing to display.
		case p.Thought:
			s.delta(blockReasoning, p.Text)
		default:
			s.delta(blockText, p.Text)
		}
	}
}

func (s *stream) delta(kind blockKind, text string) {
	if s.block != kind {
		s.closeBlock()
		s.block = kind
		s.blockID = strconv.Itoa(s.blocks)
		s.blocks++
		if kind == blockReasoning {
			s.emit(uistream.ReasoningStartChunk{ID: s.blockID})
		} else {
			s.emit(uistream.TextStartChunk{ID: s.blockID})
		}
	}
	if kind == blockReasoning {
		s.emit(uistream.ReasoningDeltaChunk{ID: s.blockID, Delta: text})
	} else {
		s.emit(uistream.TextDeltaChunk{ID: s.blockID, Delta: text})
	}
}

func (s *stream) closeBlock() {
	switch s.block {
	case blockText:
		s.emit(uistream.TextEndChunk{ID: s.blockID})
	case blockReasoning:
		s.emit(uistream.ReasoningEndChunk{ID: s.blockID})
	}
	s.block = blockNone
}

func (s *stream) functionCall(fc *genai.FunctionCall) {
	id := fc.ID
	if id == "" {
		id = "call_" + strconv.Itoa(s.calls)
	}
	s.calls++
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}
	input, err := json.Marshal(args)
	if err != nil {
		s.fail(err)
		return
	}
	s.emit(uistream.ToolInputStartChunk{ToolCallID: id, ToolName: fc.Name})
	s.emit(uistream.ToolInputAvailableChunk{ToolCallID: id, ToolName: fc.Name, Input: input})
}

func (s *stream) finishStream() {
	s.closeBlock()
	switch s.finish {
	case "", genai.FinishReasonStop, genai.FinishReasonMaxTokens, genai.FinishReasonUnspecified:
	default:
		s.emit(uistream.ErrorChunk{ErrorText: "generation stopped: " + string(s.finish)})
	}
	s.emit(uistream.FinishStepChunk{})
	if meta, ok := s.metadata(); ok {
		s.emit(uistream.MessageMetadataChunk{Metadata: meta})
	}
	s.emit(uistream.FinishChunk{})
}

type usageMetadata struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

type responseMetadata struct {
	FinishReason string         `json:"finishReason,omitempty"`
	Usage        *usageMetadata `json:"usage,omitempty"`
}

func (s *stream) metadata() (json.RawMessage, bool) {
	m := responseMetadata{FinishReason: string(s.finish)}
	if s.usage != nil {
		m.Usage = &usageMetadata{
			InputTokens:  max(0, int(s.usage.PromptTokenCount)),
			OutputTokens: max(0, int(s.usage.CandidatesTokenCount)),
		}
	}
	if m.FinishReason == "" && m.Usage == nil {
		return nil, false
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, false
	}
	return data, true
}
