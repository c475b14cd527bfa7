package diarysdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrSessionExpired is returned before any request once the token has lapsed.
var ErrSessionExpired = errors.New("diarysdk: session token expired")

// Session performs calls on behalf of one signed-in account.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
	account   AccountResponse
}

func newSession(c *SDKClient, tok TokenResponse) *Session {
	return &Session{
		client:    c,
		token:     tok.AccessToken,
		expiresAt: tok.ExpiresAt,
		account:   tok.Account,
	}
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string { return s.token }

// ExpiresAt returns when the token stops being accepted.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Account returns the account as it was when the session was opened.
func (s *Session) Account() AccountResponse { return s.account }

func (s *Session) live() error {
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return ErrSessionExpired
	}
	return nil
}

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	return s.client.doRequest(ctx, method, path, s.token, body)
}

// ============================================================================
// Users
// ============================================================================

// Me returns the caller's own profile, including private fields.
func (s *Session) Me(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/users/me", nil)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the set fields of the caller's account.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*AccountResponse, error) {
	resp, err := s.do(ctx, http.MethodPatch, "/v1/users/me", req)
	if err != nil {
		return nil, err
	}

	var acct AccountResponse
	if err := decodeJSON(resp, &acct, http.StatusOK); err != nil {
		return nil, err
	}
	s.account = acct
	return &acct, nil
}

// ChangePassword replaces the caller's password.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := s.do(ctx, http.MethodPut, "/v1/users/me/password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// SearchUsers finds accounts whose handle contains query.
func (s *Session) SearchUsers(ctx context.Context, query string) ([]UserSummary, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	return s.client.listUsers(ctx, s.token, "/v1/users?q="+url.QueryEscape(query))
}

// GetUser fetches a profile; the caller's own includes private fields.
func (s *Session) GetUser(ctx context.Context, id string) (*ProfileResponse, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	return s.client.getProfile(ctx, s.token, id)
}

// Follow starts following an account.
func (s *Session) Follow(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(id)+"/follow", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// Unfollow stops following an account.
func (s *Session) Unfollow(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id)+"/follow", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// SetUserRole changes an account's role. Requires ADMIN.
func (s *Session) SetUserRole(ctx context.Context, id, role string) (*AccountResponse, error) {
	resp, err := s.do(ctx, http.MethodPut, "/v1/admin/users/"+url.PathEscape(id)+"/role", SetRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	var acct AccountResponse
	if err := decodeJSON(resp, &acct, http.StatusOK); err != nil {
		return nil, err
	}
	return &acct, nil
}

// ============================================================================
// Groups
// ============================================================================

// CreateGroup creates a group with the caller as its ADMIN creator.
func (s *Session) CreateGroup(ctx context.Context, req CreateGroupRequest) (*GroupDetailsResponse, error) {
	resp, err := s.do(ctx, http.MethodPost, "/v1/groups", req)
	if err != nil {
		return nil, err
	}

	var g GroupDetailsResponse
	if err := decodeJSON(resp, &g, http.StatusCreated); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGroups lists the groups the caller belongs to.
func (s *Session) ListGroups(ctx context.Context) ([]GroupResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/groups", nil)
	if err != nil {
		return nil, err
	}

	var list GroupListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Groups, nil
}

// GetGroup returns a group page. Only members may view it.
func (s *Session) GetGroup(ctx context.Context, id string) (*GroupDetailsResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/groups/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var g GroupDetailsResponse
	if err := decodeJSON(resp, &g, http.StatusOK); err != nil {
		return nil, err
	}
	return &g, nil
}

// JoinGroup adds the caller as a MEMBER.
func (s *Session) JoinGroup(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/groups/"+url.PathEscape(id)+"/join", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// LeaveGroup removes the caller's membership.
func (s *Session) LeaveGroup(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/groups/"+url.PathEscape(id)+"/leave", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// SendMessage posts to a group's chat.
func (s *Session) SendMessage(ctx context.Context, groupID, content string) (*MessageResponse, error) {
	resp, err := s.do(ctx, http.MethodPost, "/v1/groups/"+url.PathEscape(groupID)+"/messages", SendMessageRequest{Content: content})
	if err != nil {
		return nil, err
	}

	var m MessageResponse
	if err := decodeJSON(resp, &m, http.StatusCreated); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns up to limit messages, newest first. A limit of zero
// uses the server default.
func (s *Session) ListMessages(ctx context.Context, groupID string, limit int) ([]MessageResponse, error) {
	path := "/v1/groups/" + url.PathEscape(groupID) + "/messages"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	resp, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list MessageListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Messages, nil
}

// SetMemberRole changes a member's role. The caller must be a group ADMIN.
func (s *Session) SetMemberRole(ctx context.Context, groupID, accountID, role string) (*MemberResponse, error) {
	path := "/v1/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(accountID) + "/role"
	resp, err := s.do(ctx, http.MethodPut, path, SetRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	var m MemberResponse
	if err := decodeJSON(resp, &m, http.StatusOK); err != nil {
		return nil, err
	}
	return &m, nil
}
