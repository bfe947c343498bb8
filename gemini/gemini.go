// Package gemini implements [uistream.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Streaming responses are
// transcoded into UI message chunks, so the events it yields decode with the
// same [uistream.ChunkDecoder] as a proxy stream.
package gemini

// DefaultModel is used when neither the client nor the request names a
// model.
const DefaultModel = "gemini-3.1-pro-preview"

const defaultMaxTokens = 65536

// Keys of the function response map sent back for tool results.
const (
	responseOutputKey = "output"
	responseErrorKey  = "error"
)
