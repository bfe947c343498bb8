package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/uistream"
)

// envelope is the v1 wire format for a persisted conversation.
type envelope struct {
	Version  int          `json:"version"`
	Messages []messageDTO `json:"messages"`
}

// MarshalConversation serializes messages in v1 envelope format.
func MarshalConversation(msgs []uistream.Message) ([]byte, error) {
	env := envelope{Version: 1, Messages: make([]messageDTO, len(msgs))}
	for i, m := range msgs {
		dto, err := marshalMessage(m)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		env.Messages[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalConversation deserializes messages in v1 envelope format.
func UnmarshalConversation(data []byte) ([]uistream.Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]uistream.Message, len(env.Messages))
	for i, dto := range env.Messages {
		m, err := unmarshalMessage(dto)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = m
	}
	return msgs, nil
}

// Save writes a conversation to a JSON file, creating parent directories
// as needed.
func Save(path string, msgs []uistream.Message) error {
	data, err := MarshalConversation(msgs)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

// Load reads a conversation from a JSON file.
func Load(path string) ([]uistream.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalConversation(data)
}

// SaveMessage writes a single indented message to a JSON file.
func SaveMessage(path string, m uistream.Message) error {
	data, err := MarshalMessageIndent(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

// writeFile replaces path atomically via a temporary sibling file.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
