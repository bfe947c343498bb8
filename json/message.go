package json

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/uistream"
)

// messageDTO is the JSON representation of a Message.
type messageDTO struct {
	ID       string          `json:"id"`
	Role     string          `json:"role"`
	Parts    []partDTO       `json:"parts"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// partDTO is the JSON representation of a Part with a type discriminator.
// Absent fields are omitted.
type partDTO struct {
	Type             string          `json:"type"`
	ID               *string         `json:"id,omitempty"`
	Text             *string         `json:"text,omitempty"`
	State            *string         `json:"state,omitempty"`
	ToolCallID       *string         `json:"toolCallId,omitempty"`
	ToolName         *string         `json:"toolName,omitempty"`
	Args             json.RawMessage `json:"args,omitempty"`
	Result           json.RawMessage `json:"result,omitempty"`
	Input            json.RawMessage `json:"input,omitempty"`
	Output           json.RawMessage `json:"output,omitempty"`
	ErrorText        *string         `json:"errorText,omitempty"`
	Preliminary      *bool           `json:"preliminary,omitempty"`
	ProviderExecuted *bool           `json:"providerExecuted,omitempty"`
	SourceID         *string         `json:"sourceId,omitempty"`
	URL              *string         `json:"url,omitempty"`
	Title            *string         `json:"title,omitempty"`
	Content          *string         `json:"content,omitempty"`
	MediaType        *string         `json:"mediaType,omitempty"`
	Filename         *string         `json:"filename,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

// MarshalMessage serializes a Message to {id, role, parts, metadata?}.
func MarshalMessage(m uistream.Message) ([]byte, error) {
	dto, err := marshalMessage(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto)
}

// MarshalMessageIndent is like MarshalMessage but indents the output.
func MarshalMessageIndent(m uistream.Message) ([]byte, error) {
	dto, err := marshalMessage(m)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(dto, "", "  ")
}

// UnmarshalMessage deserializes a Message produced by MarshalMessage.
func UnmarshalMessage(data []byte) (uistream.Message, error) {
	var dto messageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return uistream.Message{}, fmt.Errorf("unmarshal message: %w", err)
	}
	return unmarshalMessage(dto)
}

func marshalMessage(m uistream.Message) (messageDTO, error) {
	dto := messageDTO{
		ID:       m.ID,
		Role:     string(m.Role),
		Parts:    make([]partDTO, len(m.Parts)),
		Metadata: raw(m.Metadata),
	}
	for i, p := range m.Parts {
		pd, err := marshalPart(p)
		if err != nil {
			return messageDTO{}, fmt.Errorf("part %d: %w", i, err)
		}
		dto.Parts[i] = pd
	}
	return dto, nil
}

func unmarshalMessage(dto messageDTO) (uistream.Message, error) {
	role := uistream.Role(dto.Role)
	if !role.Valid() {
		return uistream.Message{}, fmt.Errorf("unknown role %q: %w", dto.Role, uistream.ErrValidation)
	}
	parts := make([]uistream.Part, len(dto.Parts))
	for i, pd := range dto.Parts {
		p, err := unmarshalPart(pd)
		if err != nil {
			return uistream.Message{}, fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = p
	}
	return uistream.Message{
		ID:       dto.ID,
		Role:     role,
		Parts:    parts,
		Metadata: raw(dto.Metadata),
	}, nil
}

func marshalPart(p uistream.Part) (partDTO, error) {
	switch v := p.(type) {
	case uistream.TextPart:
		return partDTO{Type: v.PartType(), Text: &v.Text, State: optional(string(v.State)), ProviderMetadata: raw(v.ProviderMetadata)}, nil
	case uistream.ReasoningPart:
		return partDTO{Type: v.PartType(), Text: &v.Text, State: optional(string(v.State)), ProviderMetadata: raw(v.ProviderMetadata)}, nil
	case uistream.ToolPart:
		return partDTO{
			Type:             v.PartType(),
			ToolCallID:       &v.ToolCallID,
			ToolName:         &v.ToolName,
			State:            optional(string(v.State)),
			Args:             raw(v.Args),
			Result:           raw(v.Result),
			ErrorText:        optional(v.ErrorText),
			ProviderExecuted: v.ProviderExecuted,
		}, nil
	case uistream.DynamicToolPart:
		return partDTO{
			Type:             v.PartType(),
			ToolCallID:       &v.ToolCallID,
			ToolName:         &v.ToolName,
			State:            optional(string(v.State)),
			Input:            raw(v.Input),
			Output:           raw(v.Output),
			ErrorText:        optional(v.ErrorText),
			Preliminary:      v.Preliminary,
			ProviderExecuted: v.ProviderExecuted,
		}, nil
	case uistream.SourceURLPart:
		return partDTO{Type: v.PartType(), SourceID: &v.SourceID, URL: &v.URL, Title: v.Title, ProviderMetadata: raw(v.ProviderMetadata)}, nil
	case uistream.SourceDocumentPart:
		return partDTO{Type: v.PartType(), SourceID: &v.SourceID, Title: v.Title, Content: v.Content, ProviderMetadata: raw(v.ProviderMetadata)}, nil
	case uistream.FilePart:
		return partDTO{Type: v.PartType(), MediaType: &v.MediaType, Filename: optional(v.Filename), URL: &v.URL, ProviderMetadata: raw(v.ProviderMetadata)}, nil
	case uistream.DataPart:
		return partDTO{Type: v.PartType(), ID: optional(v.ID), Data: raw(v.Data)}, nil
	case uistream.StepStartPart:
		return partDTO{Type: v.PartType()}, nil
	default:
		return partDTO{}, fmt.Errorf("unknown part type: %T", p)
	}
}

func unmarshalPart(dto partDTO) (uistream.Part, error) {
	switch {
	case dto.Type == uistream.PartTypeText:
		return uistream.TextPart{Text: deref(dto.Text), State: uistream.TextState(deref(dto.State)), ProviderMetadata: dto.ProviderMetadata}, nil
	case dto.Type == uistream.PartTypeReasoning:
		return uistream.ReasoningPart{Text: deref(dto.Text), State: uistream.TextState(deref(dto.State)), ProviderMetadata: dto.ProviderMetadata}, nil
	case dto.Type == uistream.PartTypeDynamicTool:
		return uistream.DynamicToolPart{
			ToolCallID:       deref(dto.ToolCallID),
			ToolName:         deref(dto.ToolName),
			State:            uistream.ToolState(deref(dto.State)),
			Input:            dto.Input,
			Output:           dto.Output,
			ErrorText:        deref(dto.ErrorText),
			Preliminary:      dto.Preliminary,
			ProviderExecuted: dto.ProviderExecuted,
		}, nil
	case strings.HasPrefix(dto.Type, uistream.ToolPartTypePrefix):
		name := deref(dto.ToolName)
		if name == "" {
			name = strings.TrimPrefix(dto.Type, uistream.ToolPartTypePrefix)
		}
		return uistream.ToolPart{
			ToolCallID:       deref(dto.ToolCallID),
			ToolName:         name,
			State:            uistream.ToolState(deref(dto.State)),
			Args:             dto.Args,
			Result:           dto.Result,
			ErrorText:        deref(dto.ErrorText),
			ProviderExecuted: dto.ProviderExecuted,
		}, nil
	case dto.Type == uistream.PartTypeSourceURL:
		return uistream.SourceURLPart{SourceID: deref(dto.SourceID), URL: deref(dto.URL), Title: dto.Title, ProviderMetadata: dto.ProviderMetadata}, nil
	case dto.Type == uistream.PartTypeSourceDocument:
		return uistream.SourceDocumentPart{SourceID: deref(dto.SourceID), Title: dto.Title, Content: dto.Content, ProviderMetadata: dto.ProviderMetadata}, nil
	case dto.Type == uistream.PartTypeFile:
		return uistream.FilePart{MediaType: deref(dto.MediaType), Filename: deref(dto.Filename), URL: deref(dto.URL), ProviderMetadata: dto.ProviderMetadata}, nil
	case dto.Type == uistream.PartTypeData, uistream.IsDataType(dto.Type):
		t := dto.Type
		if t == uistream.PartTypeData {
			t = ""
		}
		return uistream.DataPart{Type: t, ID: deref(dto.ID), Data: dto.Data}, nil
	case dto.Type == uistream.PartTypeStepStart:
		return uistream.StepStartPart{}, nil
	default:
		return nil, fmt.Errorf("unknown part type: %q", dto.Type)
	}
}

// raw drops JSON null so absent values are omitted.
func raw(r json.RawMessage) json.RawMessage {
	if !present(r) {
		return nil
	}
	return r
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
