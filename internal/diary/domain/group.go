package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

func (r MemberRole) Valid() bool { return r == MemberRoleAdmin || r == MemberRoleMember }

type Group struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	CreatedAt   time.Time
}

// Membership links an account to a group. The creator's row is always ADMIN.
type Membership struct {
	GroupID   string
	AccountID string
	Handle    string // filled on reads
	Role      MemberRole
	JoinedAt  time.Time
}

// Message is append-only. Newest-first order is SentAt, then insertion order.
type Message struct {
	ID           string
	GroupID      string
	SenderID     string
	SenderHandle string // filled on reads
	Content      string
	SentAt       time.Time
}

// GroupSummary is a group plus its member count, as listed for an account.
type GroupSummary struct {
	Group       Group
	MemberCount int
	Role        MemberRole // the listing account's role
}

// GroupDetails is everything shown on a group page.
type GroupDetails struct {
	Group    Group
	Members  []Membership
	Messages []Message
}
