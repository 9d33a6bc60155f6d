// Package api is the HTTP layer over the remote blog service: a single
// gateway client that every request funnels through, plus thin typed
// services for each resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rexlx/scribble/internal/logging"
)

// genericMessage is the fallback shown when the server supplies no reason.
const genericMessage = "An error occurred"

// Envelope is the canonical response wrapper. Responses that do not already
// carry this shape are wrapped as {success: true, data: <body>}.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Error is the uniform failure returned for transport problems, malformed
// payloads and server-reported failures alike.
type Error struct {
	Status  int // HTTP status, 0 when the request never completed
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsAuthFailure reports whether err is a 401 from the remote API.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client is the single chokepoint for outbound requests. It attaches the
// bearer token, normalizes response envelopes, and reacts to authentication
// failure through the injected callback.
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	onAuthFailure func()
	limiter       *rate.Limiter
	log           *logging.Logger
}

// ClientConfig wires a Client together.
type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	// OnAuthFailure runs exactly once per 401 response, before the error
	// reaches the caller. It must not perform network calls.
	OnAuthFailure func()
	// Limiter throttles outbound requests when non-nil.
	Limiter *rate.Limiter
	Log     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	lg := cfg.Log
	if lg == nil {
		lg = logging.Discard()
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		http:          hc,
		tokens:        cfg.Tokens,
		onAuthFailure: cfg.OnAuthFailure,
		limiter:       cfg.Limiter,
		log:           lg,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Message: err.Error()}
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("%s %s [%s]: %v", method, path, reqID, err)
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	// Session teardown happens before the caller sees the rejection, so
	// redirect-to-login logic always observes a cleared session. The status
	// line alone decides this; a body that fails to read must not keep a
	// rejected session around. The callback runs once per failing call and
	// performs no I/O of its own.
	if resp.StatusCode == http.StatusUnauthorized && c.onAuthFailure != nil {
		c.onAuthFailure()
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("%s %s [%s]: read body: %v", method, path, reqID, err)
		return &Error{Status: resp.StatusCode, Message: genericMessage}
	}

	env := normalize(raw, resp.StatusCode)
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericMessage
		}
		c.log.Error("%s %s [%s]: status %d: %s", method, path, reqID, resp.StatusCode, msg)
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.log.Error("%s %s [%s]: malformed payload: %v", method, path, reqID, err)
			return &Error{Status: resp.StatusCode, Message: genericMessage}
		}
	}
	return nil
}

// normalize coerces a response body into the canonical envelope. Bodies
// already shaped as an envelope pass through; anything else is wrapped as
// the data of a success envelope (failure for error statuses).
func normalize(raw []byte, status int) Envelope {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, ok := probe["success"]; ok {
			var env Envelope
			if err := json.Unmarshal(raw, &env); err == nil {
				return env
			}
		}
	}
	env := Envelope{Success: status < 400, Data: raw}
	if !env.Success {
		env.Message = http.StatusText(status)
	}
	return env
}
