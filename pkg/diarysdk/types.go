package diarysdk

import "time"

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Error is the stable error code (e.g., "invalid_input", "not_member")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Accounts
// ============================================================================

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the body of POST /v1/auth/verify.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendRequest is the body of POST /v1/auth/resend.
type ResendRequest struct {
	Email string `json:"email"`
}

// LoginRequest is the body of POST /v1/auth/login. Identifier is a handle
// or an e-mail address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AccountResponse is the owner's view of an account.
type AccountResponse struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by a successful verify or login.
type TokenResponse struct {
	// AccessToken is the HS256 session token
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int `json:"expires_in"`

	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// VerificationPendingResponse is the 202 body of a login for an account
// that still has to confirm its address.
type VerificationPendingResponse struct {
	NeedsVerification bool   `json:"needs_verification"`
	Email             string `json:"email"`
}

// UpdateProfileRequest is the body of PATCH /v1/users/me. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	Handle *string `json:"handle,omitempty"`
	Email  *string `json:"email,omitempty"`
	Bio    *string `json:"bio,omitempty"`
}

// ChangePasswordRequest is the body of PUT /v1/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetRoleRequest is the body of the account and membership role endpoints.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// UserSummary is the public projection of an account.
type UserSummary struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Bio    string `json:"bio"`
}

// ProfileResponse is a profile page. Email, Role and Verified are only
// filled when the caller is looking at their own account.
type ProfileResponse struct {
	UserSummary

	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role,omitempty"`
	Verified       bool      `json:"verified,omitempty"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserListResponse wraps search results and follow lists.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
}

// ============================================================================
// Groups
// ============================================================================

// CreateGroupRequest is the body of POST /v1/groups. MemberIDs are added
// as MEMBER alongside the creator.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids,omitempty"`
}

// GroupResponse describes a group. Role and MemberCount are set in listings.
type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	Role        string    `json:"role,omitempty"`
	MemberCount int       `json:"member_count,omitempty"`
}

// GroupListResponse lists the caller's groups, newest first.
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// MemberResponse is one membership of a group.
type MemberResponse struct {
	AccountID string    `json:"account_id"`
	Handle    string    `json:"handle"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MessageResponse is one chat message.
type MessageResponse struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"group_id"`
	SenderID     string    `json:"sender_id"`
	SenderHandle string    `json:"sender_handle"`
	Content      string    `json:"content"`
	SentAt       time.Time `json:"sent_at"`
}

// MessageListResponse lists messages newest first.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// GroupDetailsResponse is a group page: the group, every member and the
// most recent messages.
type GroupDetailsResponse struct {
	Group    GroupResponse     `json:"group"`
	Members  []MemberResponse  `json:"members"`
	Messages []MessageResponse `json:"messages"`
}

// SendMessageRequest is the body of POST /v1/groups/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz includes Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency /readyz looks at.
type HealthChecks struct {
	Database    string `json:"database"`
	Maintenance string `json:"maintenance"`
}
