// Package proxy implements [uistream.Provider] for an HTTP chat proxy that
// answers with a UI message stream.
//
// The proxy exposes one endpoint per upstream provider,
// POST /v1/llm/{provider}/chat, taking the model and the conversation as
// JSON and replying with server-sent events whose data fields are UI
// message chunks.
package proxy

import "encoding/json"

const (
	defaultBaseURL = "http://localhost:3000"
	chatPathFormat = "/v1/llm/%s/chat"
)

// apiRequest is the JSON body sent to the chat endpoint.
type apiRequest struct {
	Model    string            `json:"model"`
	Messages []json.RawMessage `json:"messages"`
}
