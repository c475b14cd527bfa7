package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupCreatorIsSingleAdmin(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")

	g, err := env.groups.Create(ctx, u.ID, CreateGroupInput{
		Name:      "Noir Club",
		MemberIDs: []string{u.ID, x.ID, x.ID, "ghost"},
	})
	require.NoError(t, err)
	require.Equal(t, u.ID, g.Group.CreatorID)
	require.Len(t, g.Members, 2)

	require.Equal(t, u.ID, g.Members[0].AccountID)
	require.Equal(t, domain.MemberRoleAdmin, g.Members[0].Role)
	require.Equal(t, x.ID, g.Members[1].AccountID)
	require.Equal(t, domain.MemberRoleMember, g.Members[1].Role)
}

func TestCreateGroupValidation(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")

	_, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: " x "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "ok", Description: strings.Repeat("d", 501)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.groups.Create(ctx, "ghost", CreateGroupInput{Name: "Orphans"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJoinAndLeave(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")

	g, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "Noir Club"})
	require.NoError(t, err)
	id := g.Group.ID

	require.ErrorIs(t, env.groups.Join(ctx, "ghost", x.ID), ErrNotFound)
	require.NoError(t, env.groups.Join(ctx, id, x.ID))
	require.ErrorIs(t, env.groups.Join(ctx, id, x.ID), ErrAlreadyMember)
	require.ErrorIs(t, env.groups.Join(ctx, id, u.ID), ErrAlreadyMember)

	require.ErrorIs(t, env.groups.Leave(ctx, id, u.ID), ErrCreatorCannotLeave)
	require.NoError(t, env.groups.Leave(ctx, id, x.ID))
	require.ErrorIs(t, env.groups.Leave(ctx, id, x.ID), ErrNotMember)
	require.ErrorIs(t, env.groups.Leave(ctx, "ghost", x.ID), ErrNotFound)
}

func TestCreatorCannotLeaveWhateverTheRole(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")

	g, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "Noir Club", MemberIDs: []string{x.ID}})
	require.NoError(t, err)

	// Promote x, who then tries to demote the creator.
	_, err = env.groups.SetMemberRole(ctx, g.Group.ID, u.ID, x.ID, domain.MemberRoleAdmin)
	require.NoError(t, err)
	_, err = env.groups.SetMemberRole(ctx, g.Group.ID, x.ID, u.ID, domain.MemberRoleMember)
	require.ErrorIs(t, err, ErrForbidden)

	require.ErrorIs(t, env.groups.Leave(ctx, g.Group.ID, u.ID), ErrCreatorCannotLeave)
}

func TestSetMemberRole(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")
	y := env.verified(t, "yolanda")
	z := env.verified(t, "zed")

	g, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "Noir Club", MemberIDs: []string{x.ID, y.ID}})
	require.NoError(t, err)
	id := g.Group.ID

	_, err = env.groups.SetMemberRole(ctx, id, x.ID, y.ID, domain.MemberRoleAdmin)
	require.ErrorIs(t, err, ErrForbidden, "members cannot assign roles")

	_, err = env.groups.SetMemberRole(ctx, id, z.ID, y.ID, domain.MemberRoleAdmin)
	require.ErrorIs(t, err, ErrForbidden, "outsiders cannot assign roles")

	_, err = env.groups.SetMemberRole(ctx, id, u.ID, z.ID, domain.MemberRoleAdmin)
	require.ErrorIs(t, err, ErrNotMember)

	_, err = env.groups.SetMemberRole(ctx, id, u.ID, y.ID, "OWNER")
	require.ErrorIs(t, err, ErrInvalidInput)

	m, err := env.groups.SetMemberRole(ctx, id, u.ID, y.ID, domain.MemberRoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.MemberRoleAdmin, m.Role)

	m, err = env.groups.SetMemberRole(ctx, id, y.ID, u.ID, domain.MemberRoleAdmin)
	require.NoError(t, err, "re-asserting the creator as ADMIN is a no-op")
	require.Equal(t, u.ID, m.AccountID)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")

	g, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "Noir Club"})
	require.NoError(t, err)
	id := g.Group.ID

	_, err = env.groups.SendMessage(ctx, id, x.ID, "hello")
	require.ErrorIs(t, err, ErrNotMember)
	_, err = env.groups.SendMessage(ctx, "ghost", u.ID, "hello")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.groups.SendMessage(ctx, id, u.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.groups.SendMessage(ctx, id, u.ID, strings.Repeat("m", 1001))
	require.ErrorIs(t, err, ErrInvalidInput)

	for i := range 5 {
		msg, err := env.groups.SendMessage(ctx, id, u.ID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		require.Equal(t, "owner", msg.SenderHandle)
		if i%2 == 0 {
			env.clock.Advance(time.Second)
		}
	}

	recent, err := env.groups.RecentMessages(ctx, id, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "message 4", recent[0].Content)
	require.Equal(t, "message 3", recent[1].Content)
	require.Equal(t, "message 2", recent[2].Content)

	all, err := env.groups.RecentMessages(ctx, id, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	_, err = env.groups.RecentMessages(ctx, "ghost", 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.groups.MessagesFor(ctx, id, x.ID, 10)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.groups.MembersFor(ctx, id, x.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, DefaultMessageLimit, clampLimit(0))
	require.Equal(t, DefaultMessageLimit, clampLimit(-3))
	require.Equal(t, 7, clampLimit(7))
	require.Equal(t, MaxMessageLimit, clampLimit(10_000))
}

func TestDetailsAndForAccount(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	u := env.verified(t, "owner")
	x := env.verified(t, "xavier")

	first, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "First"})
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	second, err := env.groups.Create(ctx, u.ID, CreateGroupInput{Name: "Second", MemberIDs: []string{x.ID}})
	require.NoError(t, err)

	_, err = env.groups.SendMessage(ctx, second.Group.ID, x.ID, "hi")
	require.NoError(t, err)

	d, err := env.groups.Details(ctx, second.Group.ID, x.ID)
	require.NoError(t, err)
	require.Equal(t, "Second", d.Group.Name)
	require.Len(t, d.Members, 2)
	require.Len(t, d.Messages, 1)

	_, err = env.groups.Details(ctx, first.Group.ID, x.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = env.groups.Details(ctx, "ghost", x.ID)
	require.ErrorIs(t, err, ErrNotFound)

	mine, err := env.groups.ForAccount(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "Second", mine[0].Group.Name)
	require.Equal(t, 2, mine[0].MemberCount)
	require.Equal(t, domain.MemberRoleAdmin, mine[0].Role)

	members, err := env.groups.Members(ctx, first.Group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
}
