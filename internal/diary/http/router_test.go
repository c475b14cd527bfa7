package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	diaryhttp "github.com/aussiebroadwan/reelbook/internal/diary/http"
	"github.com/aussiebroadwan/reelbook/internal/diary/mail"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/internal/diary/store/drivers/sqlite"
	"github.com/aussiebroadwan/reelbook/pkg/cryptox"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testCode = "424242"

var testParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

type testServer struct {
	*httptest.Server
	client    *diarysdk.SDKClient
	bootstrap *service.BootstrapService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "diary.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := service.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), "reelbook-test", time.Hour, nil)
	require.NoError(t, err)

	logger := slogx.Discard()
	hasher := cryptox.NewHasher([]byte("pepper"), testParams)
	accounts := &service.AccountService{
		Store:   st,
		Hasher:  hasher,
		Mailer:  &mail.LogMailer{Logger: logger},
		Tokens:  tokens,
		NewCode: func() (string, error) { return testCode, nil },
	}

	router := diaryhttp.NewRouter("test", st, &service.Gate{Tokens: tokens, Store: st}, httpx.NewMetrics("diary"), logger)
	router.AccountService = accounts
	router.SocialService = &service.SocialService{Store: st}
	router.GroupService = &service.GroupService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		Server:    srv,
		client:    diarysdk.NewSDKClient(srv.URL),
		bootstrap: &service.BootstrapService{Store: st, Hasher: hasher},
	}
}

// signUp registers and verifies handle, returning its session.
func (s *testServer) signUp(t *testing.T, handle string) *diarysdk.Session {
	t.Helper()
	ctx := context.Background()

	email := handle + "@example.com"
	_, err := s.client.Register(ctx, diarysdk.RegisterRequest{Handle: handle, Email: email, Password: "Password1"})
	require.NoError(t, err)

	session, err := s.client.Verify(ctx, email, testCode)
	require.NoError(t, err)
	return session
}

func requireCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *diarysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
}

func TestAliceScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	// Register, then log in before verifying.
	acct, err := s.client.Register(ctx, diarysdk.RegisterRequest{
		Handle:   "alice",
		Email:    "Alice@Example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acct.Email)
	require.Equal(t, "USER", acct.Role)
	require.False(t, acct.Verified)

	_, err = s.client.Login(ctx, "alice", "Password1")
	var pending *diarysdk.VerificationRequiredError
	require.ErrorAs(t, err, &pending)
	require.Equal(t, "alice@example.com", pending.Email)

	_, err = s.client.Verify(ctx, "alice@example.com", "000000")
	requireCode(t, err, http.StatusBadRequest, diarysdk.ErrorCodeCodeMismatch)

	alice, err := s.client.Verify(ctx, "alice@example.com", testCode)
	require.NoError(t, err)
	require.True(t, alice.Account().Verified)

	_, err = s.client.Verify(ctx, "alice@example.com", testCode)
	requireCode(t, err, http.StatusConflict, diarysdk.ErrorCodeAlreadyVerified)

	alice, err = s.client.Login(ctx, "alice@example.com", "Password1")
	require.NoError(t, err)

	me, err := alice.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.Verified)
	require.Equal(t, "alice@example.com", me.Email)

	// Follow graph.
	bob := s.signUp(t, "bob")
	bobID := bob.Account().ID

	require.NoError(t, alice.Follow(ctx, bobID))
	requireCode(t, alice.Follow(ctx, bobID), http.StatusConflict, diarysdk.ErrorCodeAlreadyFollowing)
	requireCode(t, alice.Follow(ctx, me.ID), http.StatusBadRequest, diarysdk.ErrorCodeSelfFollow)

	followers, err := s.client.Followers(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "alice", followers[0].Handle)

	profile, err := s.client.GetUser(ctx, bobID)
	require.NoError(t, err)
	require.Equal(t, 1, profile.FollowerCount)
	require.Empty(t, profile.Email, "public profile leaks the address")

	require.NoError(t, alice.Unfollow(ctx, bobID))
	requireCode(t, alice.Unfollow(ctx, bobID), http.StatusConflict, diarysdk.ErrorCodeNotFollowing)

	// Groups.
	group, err := alice.CreateGroup(ctx, diarysdk.CreateGroupRequest{Name: "Noir Club", MemberIDs: []string{bobID}})
	require.NoError(t, err)
	require.Len(t, group.Members, 2)
	groupID := group.Group.ID

	requireCode(t, alice.LeaveGroup(ctx, groupID), http.StatusForbidden, diarysdk.ErrorCodeCreatorCannotLeave)
	_, err = alice.SetMemberRole(ctx, groupID, me.ID, "MEMBER")
	requireCode(t, err, http.StatusForbidden, diarysdk.ErrorCodeForbidden)

	msg, err := bob.SendMessage(ctx, groupID, "  The Third Man tonight?  ")
	require.NoError(t, err)
	require.Equal(t, "The Third Man tonight?", msg.Content)
	require.Equal(t, "bob", msg.SenderHandle)

	carol := s.signUp(t, "carol")
	_, err = carol.GetGroup(ctx, groupID)
	requireCode(t, err, http.StatusForbidden, diarysdk.ErrorCodeForbidden)
	_, err = carol.SendMessage(ctx, groupID, "hi")
	requireCode(t, err, http.StatusConflict, diarysdk.ErrorCodeNotMember)

	require.NoError(t, carol.JoinGroup(ctx, groupID))
	requireCode(t, carol.JoinGroup(ctx, groupID), http.StatusConflict, diarysdk.ErrorCodeAlreadyMember)

	messages, err := carol.ListMessages(ctx, groupID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	promoted, err := alice.SetMemberRole(ctx, groupID, carol.Account().ID, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", promoted.Role)

	require.NoError(t, bob.LeaveGroup(ctx, groupID))
	requireCode(t, bob.LeaveGroup(ctx, groupID), http.StatusConflict, diarysdk.ErrorCodeNotMember)

	details, err := alice.GetGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, details.Members, 2)
	require.Len(t, details.Messages, 1)

	groups, err := carol.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "ADMIN", groups[0].Role)
	require.Equal(t, 2, groups[0].MemberCount)
}

func TestAnonymousRequests(t *testing.T) {
	s := newTestServer(t)

	for _, authz := range []string{"", "Bearer not-a-token", "Basic YWxpY2U6cHc="} {
		req, err := http.NewRequest(http.MethodGet, s.URL+"/v1/users/me", nil)
		require.NoError(t, err)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, authz)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	}

	// Public routes stay open to anonymous callers, even with a junk token.
	session := s.client.NewSessionFromToken("junk", time.Time{})
	_, err := session.GetUser(context.Background(), "missing")
	requireCode(t, err, http.StatusNotFound, diarysdk.ErrorCodeNotFound)
}

func TestAdminRoleChange(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	created, err := s.bootstrap.EnsureAdmin(ctx, service.AdminSeed{
		Handle:   "root",
		Address:  "root@example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	require.True(t, created)

	admin, err := s.client.Login(ctx, "root", "Password1")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", admin.Account().Role)

	dave := s.signUp(t, "dave")

	_, err = dave.SetUserRole(ctx, admin.Account().ID, "USER")
	requireCode(t, err, http.StatusForbidden, diarysdk.ErrorCodeForbidden)

	_, err = admin.SetUserRole(ctx, dave.Account().ID, "SUPERUSER")
	requireCode(t, err, http.StatusBadRequest, diarysdk.ErrorCodeInvalidInput)

	updated, err := admin.SetUserRole(ctx, dave.Account().ID, "ADMIN")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", updated.Role)

	// Dave's token still says USER, so the gate no longer accepts it.
	_, err = dave.Me(ctx)
	requireCode(t, err, http.StatusUnauthorized, diarysdk.ErrorCodeUnauthorized)

	dave, err = s.client.Login(ctx, "dave", "Password1")
	require.NoError(t, err)
	me, err := dave.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "ADMIN", me.Role)
}

func TestProfileAndPassword(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	erin := s.signUp(t, "erin")

	tooLong := strings.Repeat("x", 251)
	_, err := erin.UpdateProfile(ctx, diarysdk.UpdateProfileRequest{Bio: &tooLong})
	requireCode(t, err, http.StatusBadRequest, diarysdk.ErrorCodeInvalidInput)

	bio := "Mostly Kurosawa."
	handle := "erin_k"
	updated, err := erin.UpdateProfile(ctx, diarysdk.UpdateProfileRequest{Handle: &handle, Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "erin_k", updated.Handle)
	require.Equal(t, bio, updated.Bio)

	// Renaming orphans the old token; log in under the new handle.
	erin, err = s.client.Login(ctx, "erin_k", "Password1")
	require.NoError(t, err)

	found, err := erin.SearchUsers(ctx, "RIN_")
	require.NoError(t, err)
	require.Len(t, found, 1)

	err = erin.ChangePassword(ctx, "wrong-Password1", "Password2")
	requireCode(t, err, http.StatusUnauthorized, diarysdk.ErrorCodeInvalidCredentials)
	require.NoError(t, erin.ChangePassword(ctx, "Password1", "Password2"))

	_, err = s.client.Login(ctx, "erin_k", "Password1")
	requireCode(t, err, http.StatusUnauthorized, diarysdk.ErrorCodeInvalidCredentials)
	_, err = s.client.Login(ctx, "erin_k", "Password2")
	require.NoError(t, err)
}

func TestMalformedRequests(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Post(s.URL+"/v1/auth/register", "application/json",
		strings.NewReader(`{"handle":"frank","email":"f@example.com","password":"Password1","admin":true}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), `"invalid_input"`)

	frank := s.signUp(t, "frank")
	req, err := http.NewRequest(http.MethodGet, s.URL+"/v1/groups/anything/messages?limit=lots", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+frank.AccessToken())
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginIsRateLimited(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	var err error
	for range httpx.StrictLimit.Burst + 1 {
		_, err = s.client.Login(ctx, "nobody", "Password1")
		if diarysdk.IsCode(err, diarysdk.ErrorCodeRateLimited) {
			break
		}
		requireCode(t, err, http.StatusNotFound, diarysdk.ErrorCodeNotFound)
	}
	requireCode(t, err, http.StatusTooManyRequests, diarysdk.ErrorCodeRateLimited)
}

func TestHealthAndMetrics(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "stopped", ready.Checks.Maintenance)

	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `diary_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func TestSessionExpiresClientSide(t *testing.T) {
	s := newTestServer(t)
	session := s.client.NewSessionFromToken("whatever", time.Now().Add(-time.Minute))

	_, err := session.Me(context.Background())
	require.True(t, errors.Is(err, diarysdk.ErrSessionExpired))
}
