package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// maxBody caps how much of a response body is read
const maxBody = 1 << 20

// Client talks to the tidbit authentication API
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the API at base; a nil httpClient uses http.DefaultClient
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
	}
}

var _ ports.Backend = (*Client)(nil)

// RequestNonce starts a login attempt
func (c *Client) RequestNonce(ctx context.Context) (core.Challenge, error) {
	var challenge core.Challenge

	body, err := c.do(ctx, "nonce", http.MethodPost, PathNonce, "", nil)
	if err != nil {
		return challenge, err
	}
	if err := json.Unmarshal(body, &challenge); err != nil {
		return challenge, fmt.Errorf("%w: %v", core.ErrMalformedChallenge, err)
	}
	if err := challenge.Validate(); err != nil {
		return core.Challenge{}, err
	}
	return challenge, nil
}

// Verify completes a login attempt
func (c *Client) Verify(ctx context.Context, req core.VerifyRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "verify", http.MethodPost, PathVerify, "", payload)
}

// Logout tells the backend to drop the session
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	_, err := c.do(ctx, "logout", http.MethodPost, PathLogout, sessionID, nil)
	return err
}

// Get reads path with the session attached
func (c *Client) Get(ctx context.Context, path, sessionID string) ([]byte, error) {
	return c.do(ctx, "get "+path, http.MethodGet, path, sessionID, nil)
}

func (c *Client) do(ctx context.Context, op, method, path, sessionID string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(core.SessionHeader, sessionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read body: %w", op, err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
