package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/uistream"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ uistream.Provider = (*Client)(nil)

// Client implements [uistream.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
	newID  func() string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID used when a request names none.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithIDGenerator sets the function producing prompt and response message
// ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  DefaultModel,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Stream sends a streaming request to the Gemini API and returns an
// [uistream.EventStream] of encoded UI message chunks.
func (c *Client) Stream(ctx context.Context, req uistream.Request) (uistream.EventStream, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents, system := ConvertMessages(req.Conversation(c.newID()))
	config := buildConfig(system)

	seq := c.client.Models.GenerateContentStream(ctx, model, contents, config)
	return newStream(ctx, seq, c.newID()), nil
}

func buildConfig(system string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
		},
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}

// ConvertMessages converts uistream Messages to genai Contents. System
// message text is joined and returned separately as the system instruction.
// Exported for testing.
func ConvertMessages(msgs []uistream.Message) ([]*genai.Content, string) {
	var (
		result []*genai.Content
		system []string
	)
	for _, msg := range msgs {
		switch msg.Role {
		case uistream.RoleSystem:
			if text := msg.Text(); text != "" {
				system = append(system, text)
			}
		case uistream.RoleUser:
			if parts := convertParts(msg.Parts); len(parts) > 0 {
				result = append(result, &genai.Content{Role: genai.RoleUser, Parts: parts})
			}
		case uistream.RoleAssistant:
			if parts := convertParts(msg.Parts); len(parts) > 0 {
				result = append(result, &genai.Content{Role: genai.RoleModel, Parts: parts})
			}
			if responses := functionResponses(msg.Parts); len(responses) > 0 {
				result = append(result, &genai.Content{Role: genai.RoleUser, Parts: responses})
			}
		}
	}
	return result, strings.Join(system, "\n\n")
}

func convertParts(parts []uistream.Part) []*genai.Part {
	var out []*genai.Part
	for _, p := range parts {
		switch pt := p.(type) {
		case uistream.TextPart:
			if pt.Text != "" {
				out = append(out, &genai.Part{Text: pt.Text})
			}
		case uistream.ReasoningPart:
			if pt.Text != "" {
				out = append(out, &genai.Part{Text: pt.Text, Thought: true})
			}
		case uistream.ToolPart:
			out = append(out, functionCall(pt.ToolCallID, pt.ToolName, pt.Args))
		case uistream.DynamicToolPart:
			out = append(out, functionCall(pt.ToolCallID, pt.ToolName, pt.Input))
		case uistream.FilePart:
			out = append(out, filePart(pt))
		}
	}
	return out
}

func functionCall(id, name string, args json.RawMessage) *genai.Part {
	// Args come from decoded chunks and are always valid JSON.
	var m map[string]any
	_ = json.Unmarshal(args, &m)
	return &genai.Part{FunctionCall: &genai.FunctionCall{ID: id, Name: name, Args: m}}
}

func functionResponses(parts []uistream.Part) []*genai.Part {
	var out []*genai.Part
	for _, p := range parts {
		var (
			id, name, errText string
			result            json.RawMessage
		)
		switch pt := p.(type) {
		case uistream.ToolPart:
			id, name, result, errText = pt.ToolCallID, pt.ToolName, pt.Result, pt.ErrorText
		case uistream.DynamicToolPart:
			id, name, result = pt.ToolCallID, pt.ToolName, pt.Output
			if pt.State == uistream.ToolStateOutputError {
				errText = pt.ErrorText
			}
		default:
			continue
		}
		var response map[string]any
		switch {
		case len(result) > 0 && string(result) != "null":
			var v any
			_ = json.Unmarshal(result, &v)
			response = map[string]any{responseOutputKey: v}
		case errText != "":
			response = map[string]any{responseErrorKey: errText}
		default:
			continue
		}
		out = append(out, &genai.Part{FunctionResponse: &genai.FunctionResponse{
			ID:       id,
			Name:     name,
			Response: response,
		}})
	}
	return out
}

func filePart(p uistream.FilePart) *genai.Part {
	if mediaType, data, ok := parseDataURL(p.URL); ok {
		if p.MediaType != "" {
			mediaType = p.MediaType
		}
		return &genai.Part{InlineData: &genai.Blob{MIMEType: mediaType, Data: data}}
	}
	return &genai.Part{FileData: &genai.FileData{MIMEType: p.MediaType, FileURI: p.URL}}
}

// parseDataURL decodes a base64 data URL as produced by [uistream.DataURL].
func parseDataURL(url string) (mediaType string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(url, "data:")
	if !found {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, false
	}
	mediaType, found = strings.CutSuffix(meta, ";base64")
	if !found {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mediaType, data, true
}
