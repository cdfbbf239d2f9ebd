package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the authd HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns its first token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile returns the redacted view of the authenticated account.
func (c *Client) Profile(ctx context.Context, accessToken string) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, http.MethodGet, "/v1/auth/profile", nil, accessToken, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout acknowledges the end of a session. The server keeps no token
// state, so this is purely a client-side convention.
func (c *Client) Logout(ctx context.Context, accessToken string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, accessToken, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do runs one JSON round trip. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, accessToken string, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authsdk: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("authsdk: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			return &APIError{
				StatusCode:  resp.StatusCode,
				Code:        ErrorCodeServerError,
				Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        envelope.Error,
			Description: envelope.ErrorDescription,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("authsdk: decode response: %w", err)
		}
	}
	return nil
}
