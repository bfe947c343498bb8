package uistream

import "fmt"

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("model must not be empty: %w", ErrValidation)
	}
	if r.Prompt == "" {
		return fmt.Errorf("prompt must not be empty: %w", ErrValidation)
	}
	for i, m := range r.Messages {
		if err := ValidateMessage(m); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}

// ValidateMessage checks that a message has a known role and carries only
// parts allowed for that role.
func ValidateMessage(msg Message) error {
	switch msg.Role {
	case RoleSystem, RoleUser:
		return validateParts(msg.Parts, msg.Role, allowText|allowFile|allowData)
	case RoleAssistant:
		return validateParts(msg.Parts, msg.Role, allowText|allowFile|allowData|allowAssistant)
	default:
		return fmt.Errorf("unknown role %q: %w", msg.Role, ErrValidation)
	}
}

type partAllow uint8

const (
	allowText partAllow = 1 << iota
	allowFile
	allowData
	allowAssistant
)

func validateParts(parts []Part, role Role, allowed partAllow) error {
	for _, p := range parts {
		var need partAllow
		switch p.(type) {
		case TextPart:
			need = allowText
		case FilePart:
			need = allowFile
		case DataPart:
			need = allowData
		case ReasoningPart, ToolPart, DynamicToolPart, SourceURLPart, SourceDocumentPart, StepStartPart:
			need = allowAssistant
		default:
			return fmt.Errorf("unknown part type %T in %s message: %w", p, role, ErrValidation)
		}
		if allowed&need == 0 {
			return fmt.Errorf("%s part not allowed in %s message: %w", p.PartType(), role, ErrValidation)
		}
	}
	return nil
}
