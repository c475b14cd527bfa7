package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrReference     = errors.New("store: referenced row missing")
	ErrConstraint    = errors.New("store: constraint violated")
)

// ConstraintError carries which index or rule rejected a write, e.g.
// "accounts.handle". It unwraps to one of the sentinels above.
type ConstraintError struct {
	Target string
	Err    error
}

func (e *ConstraintError) Error() string {
	if e.Target == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", e.Err, e.Target)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// ConflictTarget returns the rejecting index of a constraint error, or "".
func ConflictTarget(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Target
	}
	return ""
}

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx exposes the same surface bound to the transaction,
// and nothing can open a transaction inside another one.
type Store interface {
	Accounts() Accounts
	Follows() Follows
	Groups() Groups
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to one transaction.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a; unique violations come back as a
	// ConstraintError targeting accounts.handle or accounts.address.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByHandle matches case-insensitively.
	GetAccountByHandle(ctx context.Context, handle string) (domain.Account, error)

	// GetAccountByAddress expects an already normalised address.
	GetAccountByAddress(ctx context.Context, address string) (domain.Account, error)

	// SetPendingCode replaces any outstanding code on an unverified account.
	SetPendingCode(ctx context.Context, id string, code domain.VerificationCode, now time.Time) error

	// MarkVerified sets the flag and clears the code in one statement.
	MarkVerified(ctx context.Context, id string, now time.Time) error

	UpdateProfile(ctx context.Context, id, handle, address, bio string, now time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role, now time.Time) error
	TouchLastLogin(ctx context.Context, id string, now time.Time) error

	// ClearExpiredCodes drops codes whose expiry is before now and returns
	// how many accounts changed.
	ClearExpiredCodes(ctx context.Context, now time.Time) (int64, error)

	// Search returns up to limit accounts whose handle contains query,
	// ignoring case.
	Search(ctx context.Context, query string, limit int) ([]domain.AccountSummary, error)
}

type Follows interface {
	// CreateFollow fails with ErrAlreadyExists for a duplicate edge and
	// ErrReference when either account is missing.
	CreateFollow(ctx context.Context, e domain.FollowEdge) error

	// DeleteFollow returns ErrNotFound when there was no edge.
	DeleteFollow(ctx context.Context, followerID, followeeID string) error

	// ListFollowers returns the accounts following id, oldest edge first.
	ListFollowers(ctx context.Context, id string) ([]domain.AccountSummary, error)

	// ListFollowing returns the accounts id follows, oldest edge first.
	ListFollowing(ctx context.Context, id string) ([]domain.AccountSummary, error)

	CountFollowers(ctx context.Context, id string) (int, error)
	CountFollowing(ctx context.Context, id string) (int, error)
}

type Groups interface {
	CreateGroup(ctx context.Context, g domain.Group) error
	GetGroupByID(ctx context.Context, id string) (domain.Group, error)

	// AddMember fails with ErrAlreadyExists for an existing pair.
	AddMember(ctx context.Context, m domain.Membership) error

	// RemoveMember returns ErrNotFound when the pair does not exist.
	RemoveMember(ctx context.Context, groupID, accountID string) error

	GetMembership(ctx context.Context, groupID, accountID string) (domain.Membership, error)
	SetMemberRole(ctx context.Context, groupID, accountID string, role domain.MemberRole) error

	// ListMembers returns members in join order with their handles.
	ListMembers(ctx context.Context, groupID string) ([]domain.Membership, error)

	// ListGroupsForAccount returns the groups accountID belongs to, newest first.
	ListGroupsForAccount(ctx context.Context, accountID string) ([]domain.GroupSummary, error)
}

type Messages interface {
	AppendMessage(ctx context.Context, m domain.Message) error

	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, groupID string, limit int) ([]domain.Message, error)
}
