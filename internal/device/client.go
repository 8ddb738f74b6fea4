package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"heater_dashboard/internal/models"

	"github.com/tidwall/gjson"
)

const (
	statusPath  = "/status"
	commandPath = "/command"

	maxBodyBytes = 1 << 20
)

// ResolveBaseURL redirects API calls to devHost when origin is the local
// development origin; otherwise the origin itself is the device.
func ResolveBaseURL(origin, devOrigin, devHost string) string {
	if devOrigin != "" && origin == devOrigin {
		return devHost
	}
	return origin
}

// Client talks to the device HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a device client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the resolved device address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchStatus performs GET /status and decodes the packed wire form.
func (c *Client) FetchStatus(ctx context.Context) (RawStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusPath, nil)
	if err != nil {
		return RawStatus{}, fmt.Errorf("%w: build status request: %w", ErrTransport, err)
	}

	body, code, err := c.do(req)
	if err != nil {
		return RawStatus{}, err
	}
	if code < 200 || code >= 300 {
		return RawStatus{}, fmt.Errorf("%w: %w", ErrTransport, errStatusNotOK(code))
	}

	if !gjson.ValidBytes(body) {
		return RawStatus{}, fmt.Errorf("%w: status body is not valid JSON", ErrMalformedResponse)
	}
	if h := gjson.GetBytes(body, "history"); !h.IsObject() {
		return RawStatus{}, fmt.Errorf("%w: status body has no history object", ErrMalformedResponse)
	}

	var raw RawStatus
	if err := json.Unmarshal(body, &raw); err != nil {
		return RawStatus{}, fmt.Errorf("%w: decode status: %w", ErrMalformedResponse, err)
	}
	return raw, nil
}

// Execute posts "TOKEN <token> <command>" and returns the device verdict.
// A rejected command is not an error: the device answers 400 with the same
// JSON shape and Success=false.
func (c *Client) Execute(ctx context.Context, token int64, command string) (models.CommandResult, error) {
	content := "TOKEN " + strconv.FormatInt(token, 10) + " " + command

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+commandPath, bytes.NewBufferString(content))
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("%w: build command request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	body, code, err := c.do(req)
	if err != nil {
		return models.CommandResult{}, err
	}

	if gjson.ValidBytes(body) && gjson.GetBytes(body, "success").Exists() {
		var result models.CommandResult
		if err := json.Unmarshal(body, &result); err != nil {
			return models.CommandResult{}, fmt.Errorf("%w: decode command result: %w", ErrMalformedResponse, err)
		}
		return result, nil
	}

	if code < 200 || code >= 300 {
		return models.CommandResult{}, fmt.Errorf("%w: %w", ErrTransport, errStatusNotOK(code))
	}
	return models.CommandResult{}, fmt.Errorf("%w: command body lacks a success flag", ErrMalformedResponse)
}

// do sends req and returns the (bounded) body and status code.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return body, resp.StatusCode, nil
}
