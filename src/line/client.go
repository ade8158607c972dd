package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yunbow/line-faq-bot/src/webclient"
)

// DefaultEndpoint is the LINE Messaging API base.
const DefaultEndpoint = "https://api.line.me/v2/bot"

// ClientConfig describes configuration for the LINE client.
type ClientConfig struct {
	Endpoint     string
	ChannelToken string
	Timeout      time.Duration
	Attempts     int
	RetryDelay   time.Duration
}

// Client sends push and reply messages.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	attempts   int
	retryDelay time.Duration
}

// SentMessage is one entry of a successful send response.
type SentMessage struct {
	ID         string `json:"id"`
	QuoteToken string `json:"quoteToken,omitempty"`
}

// APIResponse is the decoded body of a push or reply call.
type APIResponse struct {
	SentMessages []SentMessage `json:"sentMessages,omitempty"`
	Message      string        `json:"message,omitempty"`
	Details      []struct {
		Message  string `json:"message"`
		Property string `json:"property"`
	} `json:"details,omitempty"`
}

// APIError represents a non-2xx answer from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("line api status %d", e.StatusCode)
	}
	return fmt.Sprintf("line api status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus exposes the status code to error classifiers.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

func NewClient(cfg ClientConfig) *Client {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		token:      cfg.ChannelToken,
		httpClient: webclient.NewDefault(cfg.Timeout),
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
	}
}

// Push sends messages to a user, group or room id outside any reply context.
func (c *Client) Push(ctx context.Context, to string, messages []Message) (*APIResponse, error) {
	return c.send(ctx, "/message/push", map[string]any{
		"to":       to,
		"messages": messages,
	})
}

// Reply answers an inbound event using its reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) (*APIResponse, error) {
	return c.send(ctx, "/message/reply", map[string]any{
		"replyToken": replyToken,
		"messages":   messages,
	})
}

func (c *Client) send(ctx context.Context, path string, payload any) (*APIResponse, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	status, body, err := webclient.DoWithRetry(ctx, c.attempts, c.retryDelay, func() (int, []byte, error) {
		return c.post(ctx, path, jsonBody)
	})
	if err != nil {
		return nil, err
	}

	var resp APIResponse
	var decodeErr error
	if len(bytes.TrimSpace(body)) > 0 {
		decodeErr = json.Unmarshal(body, &resp)
	}

	// Error bodies from proxies are often HTML; the status still counts.
	if status < 200 || status > 299 {
		return &resp, &APIError{StatusCode: status, Message: resp.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %s response (status %d): %w", path, status, decodeErr)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, jsonBody []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
