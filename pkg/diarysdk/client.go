package diarysdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to the diary service. It performs the anonymous calls and
// creates Sessions for authenticated ones.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSessionFromToken wraps a token obtained earlier.
func (c *SDKClient) NewSessionFromToken(token string, expiresAt time.Time) *Session {
	return &Session{client: c, token: token, expiresAt: expiresAt}
}

// Register creates an unverified account and triggers the verification mail.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AccountResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var acct AccountResponse
	if err := decodeJSON(resp, &acct, http.StatusCreated); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Verify confirms an address with its code and opens a Session.
func (c *SDKClient) Verify(ctx context.Context, email, code string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/verify", "", VerifyRequest{Email: email, Code: code})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// Resend replaces the pending code of an unverified account.
func (c *SDKClient) Resend(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/resend", "", ResendRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// Login opens a Session. For an unverified account it returns a
// *VerificationRequiredError instead.
func (c *SDKClient) Login(ctx context.Context, identifier, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusAccepted {
		var pending VerificationPendingResponse
		if err := decodeJSON(resp, &pending, http.StatusAccepted); err != nil {
			return nil, err
		}
		return nil, &VerificationRequiredError{Email: pending.Email}
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// GetUser fetches the public profile of an account.
func (c *SDKClient) GetUser(ctx context.Context, id string) (*ProfileResponse, error) {
	return c.getProfile(ctx, "", id)
}

// Followers lists who follows an account.
func (c *SDKClient) Followers(ctx context.Context, id string) ([]UserSummary, error) {
	return c.listUsers(ctx, "", "/v1/users/"+url.PathEscape(id)+"/followers")
}

// Following lists who an account follows.
func (c *SDKClient) Following(ctx context.Context, id string) ([]UserSummary, error) {
	return c.listUsers(ctx, "", "/v1/users/"+url.PathEscape(id)+"/following")
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *SDKClient) getProfile(ctx context.Context, token, id string) (*ProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *SDKClient) listUsers(ctx context.Context, token, path string) ([]UserSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var list UserListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Users, nil
}
