// Package authapi is the HTTP client for the remote TrainHub authentication
// backend. The backend is an external collaborator: this package consumes
// its contract and reports its failures verbatim.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// loginPaths maps each role to its dedicated login endpoint. The backend
// wraps the returned profile differently per endpoint; normalization deals
// with that downstream.
var loginPaths = map[domain.Role]string{
	domain.RoleUser:    "/api/v1/users/login",
	domain.RoleTrainer: "/api/v1/trainers/login",
	domain.RoleAdmin:   "/api/v1/admins/login",
}

const (
	signupPath = "/api/v1/users/signup"
	verifyPath = "/api/v1/users/verify-otp"
	resendPath = "/api/v1/users/resend-otp"
)

// APIError is a non-2xx backend response. Message carries the backend's own
// message when the error payload had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TokenSource supplies the current bearer token; empty means none.
type TokenSource func() string

// Client talks to the auth backend. It performs no retries and keeps no
// state beyond its configuration.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenSource wires the current-session token provider. Calls not marked
// skip-auth carry it as a bearer Authorization header when non-empty.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) Login(ctx context.Context, role domain.Role, email, password string) (ports.AuthPayload, error) {
	path, ok := loginPaths[role]
	if !ok {
		return ports.AuthPayload{}, domain.ErrInvalidRole
	}

	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, http.MethodPost, path, body, requestOptions{skipAuth: true})
	if err != nil {
		return ports.AuthPayload{}, err
	}
	return payloadFrom(raw), nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}
	_, err := c.do(ctx, http.MethodPost, signupPath, body, requestOptions{skipAuth: true})
	return err
}

func (c *Client) VerifyCode(ctx context.Context, email, code string) (ports.AuthPayload, error) {
	body := map[string]string{"email": email, "otp": code}
	raw, err := c.do(ctx, http.MethodPost, verifyPath, body, requestOptions{})
	if err != nil {
		return ports.AuthPayload{}, err
	}
	return payloadFrom(raw), nil
}

func (c *Client) ResendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, resendPath, body, requestOptions{})
	return err
}

type requestOptions struct {
	// skipAuth suppresses the Authorization header even when a token exists.
	skipAuth bool
}

func (c *Client) do(ctx context.Context, method, path string, body any, opts requestOptions) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if !opts.skipAuth && c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("auth backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFrom(resp.StatusCode, raw)
	}
	return raw, nil
}

// payloadFrom lifts the top-level token out of a response while keeping the
// body verbatim for normalization.
func payloadFrom(raw json.RawMessage) ports.AuthPayload {
	var env struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(raw, &env)
	return ports.AuthPayload{Token: env.Token, Body: raw}
}

// errorFrom builds an APIError from an error response, preferring the
// backend's message and synthesizing one from the status code otherwise.
func errorFrom(status int, raw []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Message
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
