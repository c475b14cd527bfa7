package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// Account is a registered identity. A verified account never carries a
// pending code; the store enforces that with a CHECK constraint.
type Account struct {
	ID           string
	Handle       string
	Address      string // contact e-mail, lower-cased
	PasswordHash string // argon2id PHC string
	Role         Role
	Bio          string
	Verified     bool

	PendingCode   *string    // six digits while unverified
	CodeExpiresAt *time.Time // set together with PendingCode

	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

// Summary is the public projection of an account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Handle: a.Handle, Bio: a.Bio}
}

// AccountSummary is what other accounts get to see.
type AccountSummary struct {
	ID     string
	Handle string
	Bio    string
}

// Profile is an account with its follow counts.
type Profile struct {
	Account        Account
	FollowerCount  int
	FollowingCount int
}

// VerificationCode is a code and when it stops being accepted.
type VerificationCode struct {
	Code      string
	ExpiresAt time.Time
}
