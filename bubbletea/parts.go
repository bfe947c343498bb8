package bubbletea

import (
	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/goldmark"
)

// blockFactory builds and refreshes blocks for message parts.
type blockFactory struct {
	renderer *goldmark.Renderer
	styles   Styles
}

// newBlock creates an empty block for p, or nil when p is not shown.
func (f blockFactory) newBlock(p uistream.Part, step int) PartBlock {
	switch p.(type) {
	case uistream.TextPart:
		if isErrorPart(p) {
			return NewErrorBlock("", f.styles)
		}
		return NewTextBlock(f.renderer, f.styles)
	case uistream.ReasoningPart:
		return NewReasoningBlock(f.styles)
	case uistream.ToolPart, uistream.DynamicToolPart:
		return NewToolBlock(f.styles)
	case uistream.SourceURLPart, uistream.SourceDocumentPart, uistream.FilePart, uistream.DataPart:
		return NewNoteBlock(f.styles)
	case uistream.StepStartPart:
		return NewStepBlock(step, f.styles)
	}
	return nil
}

// sync returns blocks showing parts, reusing the block at the same position
// in prev when it accepts the part so that toggled state survives updates.
// The first step marker of a message is not shown.
func (f blockFactory) sync(prev []MessageBlock, parts []uistream.Part) []MessageBlock {
	out := make([]MessageBlock, 0, len(parts))
	step := 0
	for _, p := range parts {
		if _, ok := p.(uistream.StepStartPart); ok {
			step++
			if step == 1 {
				continue
			}
		}
		i := len(out)
		if i < len(prev) {
			if pb, ok := prev[i].(PartBlock); ok && pb.SetPart(p) {
				if sb, ok := pb.(*StepBlock); ok {
					sb.step = step
				}
				out = append(out, pb)
				continue
			}
		}
		b := f.newBlock(p, step)
		if b == nil {
			continue
		}
		b.SetPart(p)
		out = append(out, b)
	}
	return out
}

// messageBlocks returns blocks for a stored message.
func (f blockFactory) messageBlocks(msg uistream.Message) []MessageBlock {
	if msg.Role == uistream.RoleAssistant {
		return f.sync(nil, msg.Parts)
	}
	if msg.Role == uistream.RoleUser {
		return []MessageBlock{newUserBlockFromMessage(msg, f.styles)}
	}
	return nil
}
