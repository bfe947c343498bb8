package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/uistream"
	uistreamjson "github.com/fwojciec/uistream/json"
	"github.com/fwojciec/uistream/sse"
	"github.com/google/uuid"
)

// Interface compliance check.
var _ uistream.Provider = (*Client)(nil)

// Client implements [uistream.Provider] for the chat proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	newID      func() string
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the proxy base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithIDGenerator sets the function producing ids for prompt messages.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// New creates a new proxy [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream posts the conversation plus the prompt to the provider's chat
// endpoint and returns the response body as an event stream.
func (c *Client) Stream(ctx context.Context, req uistream.Request) (uistream.EventStream, error) {
	if req.Provider == "" {
		return nil, fmt.Errorf("proxy: provider must not be empty: %w", uistream.ErrValidation)
	}
	body, err := c.buildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}

	endpoint := c.baseURL + fmt.Sprintf(chatPathFormat, url.PathEscape(req.Provider))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	return sse.NewReader(resp.Body), nil
}

func (c *Client) buildRequestBody(req uistream.Request) ([]byte, error) {
	conv := req.Conversation(c.newID())
	msgs := make([]json.RawMessage, len(conv))
	for i, m := range conv {
		data, err := uistreamjson.MarshalMessage(m)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = data
	}
	return json.Marshal(apiRequest{Model: req.Model, Messages: msgs})
}

// maxErrorBody caps how much of an error response is reported.
const maxErrorBody = 4 << 10

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("proxy: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("proxy: HTTP %d: %s", resp.StatusCode, msg)
}
