package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/store/drivers/sqlite"
	"github.com/aussiebroadwan/reelbook/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// Cheap argon2 parameters; the real ones cost ~20 MiB per hash.
var testParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sentMail struct {
	To, Subject, Body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail sent")
	return m.sent[len(m.sent)-1]
}

type testEnv struct {
	store    *sqlite.Store
	clock    *fakeClock
	mailer   *recordingMailer
	tokens   *TokenService
	accounts *AccountService
	social   *SocialService
	groups   *GroupService
	gate     *Gate
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "diary.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	mailer := &recordingMailer{}

	tokens, err := NewTokenService(testSecret, "reelbook-test", 24*time.Hour, clock.Now)
	require.NoError(t, err)

	// Sequential codes so superseded codes never collide with new ones.
	var seq atomic.Int64
	newCode := func() (string, error) {
		return fmt.Sprintf("%06d", 100000+seq.Add(1)), nil
	}

	return &testEnv{
		store:  st,
		clock:  clock,
		mailer: mailer,
		tokens: tokens,
		accounts: &AccountService{
			Store:   st,
			Hasher:  cryptox.NewHasher([]byte("pepper"), testParams),
			Mailer:  mailer,
			Tokens:  tokens,
			CodeTTL: 10 * time.Minute,
			Now:     clock.Now,
			NewCode: newCode,
		},
		social: &SocialService{Store: st, Now: clock.Now},
		groups: &GroupService{Store: st, Now: clock.Now},
		gate:   &Gate{Tokens: tokens, Store: st},
	}
}

// pendingCode reads the outstanding code for address straight from the store.
func (e *testEnv) pendingCode(t *testing.T, address string) string {
	t.Helper()
	a, err := e.store.Accounts().GetAccountByAddress(context.Background(), address)
	require.NoError(t, err)
	require.NotNil(t, a.PendingCode)
	return *a.PendingCode
}

// register creates an unverified account named handle.
func (e *testEnv) register(t *testing.T, handle string) domain.Account {
	t.Helper()
	a, err := e.accounts.Register(context.Background(), RegisterInput{
		Handle:   handle,
		Address:  handle + "@x.com",
		Password: "Passw0rd1",
	})
	require.NoError(t, err)
	return a
}

// verified creates and verifies an account named handle.
func (e *testEnv) verified(t *testing.T, handle string) domain.Account {
	t.Helper()
	a := e.register(t, handle)
	res, err := e.accounts.Verify(context.Background(), a.Address, e.pendingCode(t, a.Address))
	require.NoError(t, err)
	return res.Account
}
