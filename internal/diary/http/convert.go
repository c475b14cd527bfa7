package http

import (
	"net/http"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

// caller returns the authenticated principal. Routes that use it sit
// behind RequireAuthenticated.
func caller(r *http.Request) httpx.Principal {
	p, _ := httpx.PrincipalFrom(r.Context())
	return p
}

func toAccountResponse(a domain.Account) diarysdk.AccountResponse {
	return diarysdk.AccountResponse{
		ID:        a.ID,
		Handle:    a.Handle,
		Email:     a.Address,
		Role:      string(a.Role),
		Bio:       a.Bio,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
	}
}

func toTokenResponse(a domain.Account, tok service.IssuedToken) diarysdk.TokenResponse {
	return diarysdk.TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(tok.ExpiresIn.Seconds()),
		ExpiresAt:   tok.ExpiresAt,
		Account:     toAccountResponse(a),
	}
}

// toProfileResponse fills the private fields only when private is set.
func toProfileResponse(p domain.Profile, private bool) diarysdk.ProfileResponse {
	out := diarysdk.ProfileResponse{
		UserSummary:    toUserSummary(p.Account.Summary()),
		FollowerCount:  p.FollowerCount,
		FollowingCount: p.FollowingCount,
		CreatedAt:      p.Account.CreatedAt,
	}
	if private {
		out.Email = p.Account.Address
		out.Role = string(p.Account.Role)
		out.Verified = p.Account.Verified
	}
	return out
}

func toUserSummary(s domain.AccountSummary) diarysdk.UserSummary {
	return diarysdk.UserSummary{ID: s.ID, Handle: s.Handle, Bio: s.Bio}
}

func toUserList(in []domain.AccountSummary) diarysdk.UserListResponse {
	out := diarysdk.UserListResponse{Users: make([]diarysdk.UserSummary, 0, len(in))}
	for _, s := range in {
		out.Users = append(out.Users, toUserSummary(s))
	}
	return out
}

func toGroupResponse(g domain.Group) diarysdk.GroupResponse {
	return diarysdk.GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatorID:   g.CreatorID,
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupList(in []domain.GroupSummary) diarysdk.GroupListResponse {
	out := diarysdk.GroupListResponse{Groups: make([]diarysdk.GroupResponse, 0, len(in))}
	for _, s := range in {
		g := toGroupResponse(s.Group)
		g.Role = string(s.Role)
		g.MemberCount = s.MemberCount
		out.Groups = append(out.Groups, g)
	}
	return out
}

func toMemberResponse(m domain.Membership) diarysdk.MemberResponse {
	return diarysdk.MemberResponse{
		AccountID: m.AccountID,
		Handle:    m.Handle,
		Role:      string(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

func toMembers(in []domain.Membership) []diarysdk.MemberResponse {
	out := make([]diarysdk.MemberResponse, 0, len(in))
	for _, m := range in {
		out = append(out, toMemberResponse(m))
	}
	return out
}

func toMessageResponse(m domain.Message) diarysdk.MessageResponse {
	return diarysdk.MessageResponse{
		ID:           m.ID,
		GroupID:      m.GroupID,
		SenderID:     m.SenderID,
		SenderHandle: m.SenderHandle,
		Content:      m.Content,
		SentAt:       m.SentAt,
	}
}

func toMessages(in []domain.Message) []diarysdk.MessageResponse {
	out := make([]diarysdk.MessageResponse, 0, len(in))
	for _, m := range in {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toGroupDetails(d domain.GroupDetails) diarysdk.GroupDetailsResponse {
	return diarysdk.GroupDetailsResponse{
		Group:    toGroupResponse(d.Group),
		Members:  toMembers(d.Members),
		Messages: toMessages(d.Messages),
	}
}
