package snipeit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"snipelabel/internal/services"
)

// RemoteError is a server-reported application error: the API answered, but
// the response body carries an error status and a message list that must be
// surfaced to the operator verbatim.
type RemoteError struct {
	StatusCode int
	Messages   []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("snipe-it server error (HTTP %d)", e.StatusCode)
	}
	return "snipe-it server error: " + strings.Join(e.Messages, "; ")
}

func (e *RemoteError) Unwrap() error {
	return services.ErrRemote
}

// Client issues authenticated reads against a Snipe-IT installation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Snipe-IT API client. The timeout bounds the single request a
// label run makes; there are no retries.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("snipe-it base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("snipe-it api key required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized installation URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch retrieves one inventory item as the raw JSON object the server
// returned. A body whose status field reports an error becomes a
// *RemoteError before any flattening is attempted; network and timeout
// failures classify as transport errors.
func (c *Client) Fetch(ctx context.Context, itemType ItemType, itemID string) (map[string]any, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, services.Wrap(services.ErrValidation, "fetch", "item id", "must not be empty", nil)
	}

	endpoint := fmt.Sprintf("%s/api/v1/%s/%s", c.baseURL, itemType.APISegment(), itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "fetch", "request", endpoint, err)
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &RemoteError{StatusCode: resp.StatusCode, Messages: []string{http.StatusText(resp.StatusCode)}}
		}
		return nil, services.Wrap(services.ErrRemote, "fetch", "decode response", endpoint, err)
	}

	if status, ok := payload["status"].(string); ok && status == "error" {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Messages:   extractMessages(payload["messages"]),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Messages: []string{http.StatusText(resp.StatusCode)}}
	}

	return payload, nil
}

// The messages field shape varies by endpoint: a plain string, a list, or a
// field-keyed object of validation messages.
func extractMessages(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []any:
		messages := make([]string, 0, len(v))
		for _, item := range v {
			messages = append(messages, stringify(item))
		}
		return messages
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		messages := make([]string, 0, len(keys))
		for _, key := range keys {
			messages = append(messages, key+": "+stringify(v[key]))
		}
		return messages
	default:
		return []string{stringify(v)}
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(v)
	}
}
