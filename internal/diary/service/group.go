package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/aussiebroadwan/reelbook/pkg/idx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

type CreateGroupInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"max=500"`
	MemberIDs   []string `json:"member_ids"`
}

// GroupService owns groups, their memberships and their messages. A group's
// creator holds an ADMIN membership from creation on and can never leave.
type GroupService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *GroupService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create makes the group and the creator's ADMIN row in one transaction.
// MemberIDs are added as MEMBER; unknown ids, repeats and the creator's own
// id are skipped.
func (s *GroupService) Create(ctx context.Context, creatorID string, in CreateGroupInput) (domain.GroupDetails, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := checkStruct(in); err != nil {
		return domain.GroupDetails{}, err
	}

	now := s.now()
	group := domain.Group{
		ID:          idx.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatorID:   creatorID,
		CreatedAt:   now,
	}

	var members []domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Creator must exist
		if _, err := tx.Accounts().GetAccountByID(ctx, creatorID); err != nil {
			return err
		}

		// 2. Group and creator row together
		if err := tx.Groups().CreateGroup(ctx, group); err != nil {
			return err
		}
		if err := tx.Groups().AddMember(ctx, domain.Membership{
			GroupID:   group.ID,
			AccountID: creatorID,
			Role:      domain.MemberRoleAdmin,
			JoinedAt:  now,
		}); err != nil {
			return err
		}

		// 3. Initial members, best effort
		seen := map[string]struct{}{creatorID: {}}
		for _, id := range in.MemberIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			if _, err := tx.Accounts().GetAccountByID(ctx, id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				return err
			}
			if err := tx.Groups().AddMember(ctx, domain.Membership{
				GroupID:   group.ID,
				AccountID: id,
				Role:      domain.MemberRoleMember,
				JoinedAt:  now,
			}); err != nil {
				return err
			}
		}

		var err error
		members, err = tx.Groups().ListMembers(ctx, group.ID)
		return err
	})
	if err != nil {
		return domain.GroupDetails{}, storeError(err)
	}

	slogx.FromContext(ctx).Info("group created",
		slog.String("group_id", group.ID),
		slog.String("creator_id", creatorID),
		slog.Int("members", len(members)),
	)
	return domain.GroupDetails{Group: group, Members: members, Messages: []domain.Message{}}, nil
}

func (s *GroupService) Join(ctx context.Context, groupID, accountID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Groups().GetGroupByID(ctx, groupID); err != nil {
			return err
		}
		if _, err := tx.Accounts().GetAccountByID(ctx, accountID); err != nil {
			return err
		}

		err := tx.Groups().AddMember(ctx, domain.Membership{
			GroupID:   groupID,
			AccountID: accountID,
			Role:      domain.MemberRoleMember,
			JoinedAt:  s.now(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyMember
		}
		return err
	})
	return storeError(err)
}

// Leave removes accountID from the group. The creator check comes before
// the membership check, whatever role is stored for the creator.
func (s *GroupService) Leave(ctx context.Context, groupID, accountID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		group, err := tx.Groups().GetGroupByID(ctx, groupID)
		if err != nil {
			return err
		}
		if group.CreatorID == accountID {
			return ErrCreatorCannotLeave
		}

		err = tx.Groups().RemoveMember(ctx, groupID, accountID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotMember
		}
		return err
	})
	return storeError(err)
}

// SendMessage appends a message from a current member.
func (s *GroupService) SendMessage(ctx context.Context, groupID, senderID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if err := checkField("content", content, messageRules); err != nil {
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:       idx.New().String(),
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
		SentAt:   s.now(),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Groups().GetGroupByID(ctx, groupID); err != nil {
			return err
		}
		m, err := tx.Groups().GetMembership(ctx, groupID, senderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotMember
			}
			return err
		}
		msg.SenderHandle = m.Handle
		return tx.Messages().AppendMessage(ctx, msg)
	})
	if err != nil {
		return domain.Message{}, storeError(err)
	}
	return msg, nil
}

// RecentMessages returns the newest limit messages, newest first. limit <= 0
// means DefaultMessageLimit and anything above MaxMessageLimit is clamped.
func (s *GroupService) RecentMessages(ctx context.Context, groupID string, limit int) ([]domain.Message, error) {
	if _, err := s.Store.Groups().GetGroupByID(ctx, groupID); err != nil {
		return nil, storeError(err)
	}
	out, err := s.Store.Messages().ListRecent(ctx, groupID, clampLimit(limit))
	return out, storeError(err)
}

// MessagesFor is RecentMessages for a caller who must be a member.
func (s *GroupService) MessagesFor(ctx context.Context, groupID, viewerID string, limit int) ([]domain.Message, error) {
	if err := s.requireViewer(ctx, groupID, viewerID); err != nil {
		return nil, err
	}
	return s.RecentMessages(ctx, groupID, limit)
}

// SetMemberRole lets a group ADMIN promote or demote another member. The
// creator's row is fixed at ADMIN.
func (s *GroupService) SetMemberRole(ctx context.Context, groupID, actorID, targetID string, role domain.MemberRole) (domain.Membership, error) {
	if !role.Valid() {
		return domain.Membership{}, &ValidationError{Field: "role", Reason: "must be ADMIN or MEMBER"}
	}

	var out domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		group, err := tx.Groups().GetGroupByID(ctx, groupID)
		if err != nil {
			return err
		}

		// 1. Only group admins assign roles
		actor, err := tx.Groups().GetMembership(ctx, groupID, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrForbidden
			}
			return err
		}
		if actor.Role != domain.MemberRoleAdmin {
			return ErrForbidden
		}

		// 2. Target must be a member
		out, err = tx.Groups().GetMembership(ctx, groupID, targetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotMember
			}
			return err
		}

		// 3. The creator stays ADMIN
		if targetID == group.CreatorID {
			if role == domain.MemberRoleAdmin {
				return nil
			}
			return ErrForbidden
		}

		if err := tx.Groups().SetMemberRole(ctx, groupID, targetID, role); err != nil {
			return err
		}
		out.Role = role
		return nil
	})
	if err != nil {
		return domain.Membership{}, storeError(err)
	}
	return out, nil
}

func (s *GroupService) Members(ctx context.Context, groupID string) ([]domain.Membership, error) {
	if _, err := s.Store.Groups().GetGroupByID(ctx, groupID); err != nil {
		return nil, storeError(err)
	}
	out, err := s.Store.Groups().ListMembers(ctx, groupID)
	return out, storeError(err)
}

// MembersFor is Members for a caller who must be a member.
func (s *GroupService) MembersFor(ctx context.Context, groupID, viewerID string) ([]domain.Membership, error) {
	if err := s.requireViewer(ctx, groupID, viewerID); err != nil {
		return nil, err
	}
	return s.Members(ctx, groupID)
}

// ForAccount lists the groups accountID belongs to, newest first.
func (s *GroupService) ForAccount(ctx context.Context, accountID string) ([]domain.GroupSummary, error) {
	out, err := s.Store.Groups().ListGroupsForAccount(ctx, accountID)
	return out, storeError(err)
}

// Details is the group page: the group, its members and the latest
// DefaultMessageLimit messages. Only members may see it.
func (s *GroupService) Details(ctx context.Context, groupID, viewerID string) (domain.GroupDetails, error) {
	group, err := s.Store.Groups().GetGroupByID(ctx, groupID)
	if err != nil {
		return domain.GroupDetails{}, storeError(err)
	}
	if err := s.requireViewer(ctx, groupID, viewerID); err != nil {
		return domain.GroupDetails{}, err
	}

	members, err := s.Store.Groups().ListMembers(ctx, groupID)
	if err != nil {
		return domain.GroupDetails{}, storeError(err)
	}
	messages, err := s.Store.Messages().ListRecent(ctx, groupID, DefaultMessageLimit)
	if err != nil {
		return domain.GroupDetails{}, storeError(err)
	}
	return domain.GroupDetails{Group: group, Members: members, Messages: messages}, nil
}

// requireViewer maps a missing membership to ErrForbidden.
func (s *GroupService) requireViewer(ctx context.Context, groupID, viewerID string) error {
	_, err := s.Store.Groups().GetMembership(ctx, groupID, viewerID)
	if errors.Is(err, store.ErrNotFound) {
		if _, gerr := s.Store.Groups().GetGroupByID(ctx, groupID); gerr != nil {
			return storeError(gerr)
		}
		return ErrForbidden
	}
	return storeError(err)
}
