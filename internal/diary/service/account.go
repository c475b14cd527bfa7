package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/mail"
	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/aussiebroadwan/reelbook/pkg/cryptox"
	"github.com/aussiebroadwan/reelbook/pkg/idx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

// DefaultCodeTTL is how long an e-mailed verification code is accepted.
const DefaultCodeTTL = 10 * time.Minute

// PasswordHasher is the opaque hash/verify capability. Verify returns
// cryptox.ErrMismatch for a wrong password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) error
}

type RegisterInput struct {
	Handle   string `json:"handle" validate:"required,min=3,max=10,handle"`
	Address  string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,min=8,max=128,password"`
}

// ProfileUpdate changes only the fields that are set.
type ProfileUpdate struct {
	Handle  *string
	Address *string
	Bio     *string
}

// AuthResult is a verified account with a fresh session token.
type AuthResult struct {
	Account domain.Account
	Token   IssuedToken
}

// LoginResult either carries a token or says a code was sent instead.
type LoginResult struct {
	Account           domain.Account
	Token             *IssuedToken
	NeedsVerification bool
}

type AccountService struct {
	Store   store.Store
	Hasher  PasswordHasher
	Mailer  mail.Mailer
	Tokens  *TokenService
	CodeTTL time.Duration
	Now     func() time.Time

	// NewCode defaults to cryptox.NewNumericCode.
	NewCode func() (string, error)
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *AccountService) newCode(now time.Time) (domain.VerificationCode, error) {
	gen := s.NewCode
	if gen == nil {
		gen = cryptox.NewNumericCode
	}
	code, err := gen()
	if err != nil {
		return domain.VerificationCode{}, fmt.Errorf("%w: code generation: %w", ErrUnavailable, err)
	}
	return domain.VerificationCode{Code: code, ExpiresAt: now.Add(s.codeTTL())}, nil
}

// Register creates an unverified account and mails it a code. A failed
// delivery is logged; the account stands and the caller can ask for a resend.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	in.Handle = strings.TrimSpace(in.Handle)
	in.Address = normalizeAddress(in.Address)

	// 1. Validate before touching anything
	if err := checkStruct(in); err != nil {
		return domain.Account{}, err
	}

	// 2. Hash and mint the first code
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: hash: %w", ErrUnavailable, err)
	}
	now := s.now()
	code, err := s.newCode(now)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:            idx.New().String(),
		Handle:        in.Handle,
		Address:       in.Address,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		PendingCode:   &code.Code,
		CodeExpiresAt: &code.ExpiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 3. Insert; the unique indexes decide concurrent races
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		return domain.Account{}, storeError(err)
	}

	slogx.FromContext(ctx).Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("handle", account.Handle),
	)

	// 4. Deliver, best effort
	s.deliver(ctx, account, code)
	return account, nil
}

// Verify consumes the pending code for address and returns a session token.
func (s *AccountService) Verify(ctx context.Context, address, code string) (AuthResult, error) {
	address = normalizeAddress(address)
	code = strings.TrimSpace(code)
	if address == "" {
		return AuthResult{}, &ValidationError{Field: "email", Reason: "is required"}
	}
	if code == "" {
		return AuthResult{}, &ValidationError{Field: "code", Reason: "is required"}
	}

	now := s.now()
	var account domain.Account

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = tx.Accounts().GetAccountByAddress(ctx, address)
		if err != nil {
			return err
		}

		if account.Verified {
			return ErrAlreadyVerified
		}
		if account.PendingCode == nil || account.CodeExpiresAt == nil || now.After(*account.CodeExpiresAt) {
			return ErrCodeExpired
		}
		if subtle.ConstantTimeCompare([]byte(*account.PendingCode), []byte(code)) != 1 {
			return ErrCodeMismatch
		}

		if err := tx.Accounts().MarkVerified(ctx, account.ID, now); err != nil {
			return err
		}
		account.Verified = true
		account.PendingCode = nil
		account.CodeExpiresAt = nil
		account.UpdatedAt = now
		return nil
	})
	if err != nil {
		return AuthResult{}, storeError(err)
	}

	slogx.FromContext(ctx).Info("account verified", slog.String("account_id", account.ID))

	token, err := s.Tokens.Issue(account)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: issue token: %w", ErrUnavailable, err)
	}
	return AuthResult{Account: account, Token: token}, nil
}

// Resend replaces the pending code for address; the previous one stops
// working immediately.
func (s *AccountService) Resend(ctx context.Context, address string) error {
	address = normalizeAddress(address)
	if address == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}

	now := s.now()
	var (
		account domain.Account
		code    domain.VerificationCode
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = tx.Accounts().GetAccountByAddress(ctx, address)
		if err != nil {
			return err
		}
		if account.Verified {
			return ErrAlreadyVerified
		}

		code, err = s.newCode(now)
		if err != nil {
			return err
		}
		return tx.Accounts().SetPendingCode(ctx, account.ID, code, now)
	})
	if err != nil {
		return storeError(err)
	}

	s.deliver(ctx, account, code)
	return nil
}

// Login matches identifier against handles first and addresses second. An
// unverified account gets a fresh code and NeedsVerification instead of a
// token.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return LoginResult{}, &ValidationError{Field: "identifier", Reason: "is required"}
	}
	if password == "" {
		return LoginResult{}, &ValidationError{Field: "password", Reason: "is required"}
	}
	l := slogx.FromContext(ctx)

	// 1. Resolve the account
	account, err := s.lookup(ctx, identifier)
	if err != nil {
		return LoginResult{}, err
	}

	// 2. Check the password
	if err := s.Hasher.Verify(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("login rejected", slog.String("account_id", account.ID))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("%w: verify password: %w", ErrUnavailable, err)
	}

	now := s.now()

	// 3. Unverified: re-issue the code and stop short of a token. The state is
	// re-read in the transaction; a Verify that landed since step 1 sends the
	// login down the verified path instead.
	if !account.Verified {
		code, err := s.newCode(now)
		if err != nil {
			return LoginResult{}, err
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			current, err := tx.Accounts().GetAccountByID(ctx, account.ID)
			if err != nil {
				return err
			}
			account = current
			if account.Verified {
				return nil
			}
			return tx.Accounts().SetPendingCode(ctx, account.ID, code, now)
		})
		if err != nil {
			return LoginResult{}, storeError(err)
		}

		if !account.Verified {
			account.PendingCode = &code.Code
			account.CodeExpiresAt = &code.ExpiresAt
			account.UpdatedAt = now

			s.deliver(ctx, account, code)
			l.Info("login pending verification", slog.String("account_id", account.ID))
			return LoginResult{Account: account, NeedsVerification: true}, nil
		}
	}

	// 4. Verified: stamp and issue
	if err := s.Store.Accounts().TouchLastLogin(ctx, account.ID, now); err != nil {
		return LoginResult{}, storeError(err)
	}
	account.LastLoginAt = &now

	token, err := s.Tokens.Issue(account)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: issue token: %w", ErrUnavailable, err)
	}

	l.Info("login succeeded", slog.String("account_id", account.ID))
	return LoginResult{Account: account, Token: &token}, nil
}

func (s *AccountService) lookup(ctx context.Context, identifier string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByHandle(ctx, identifier)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, storeError(err)
	}

	account, err = s.Store.Accounts().GetAccountByAddress(ctx, normalizeAddress(identifier))
	if err != nil {
		return domain.Account{}, storeError(err)
	}
	return account, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AccountService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	if err := checkField("new_password", next, passwordRules); err != nil {
		return err
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return storeError(err)
	}

	if err := s.Hasher.Verify(current, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%w: verify password: %w", ErrUnavailable, err)
	}

	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("%w: hash: %w", ErrUnavailable, err)
	}
	if err := s.Store.Accounts().UpdatePasswordHash(ctx, accountID, hash, s.now()); err != nil {
		return storeError(err)
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("account_id", accountID))
	return nil
}

// UpdateProfile applies the set fields of u with the same rules as Register.
// Changing the handle orphans existing tokens, whose subject is the old handle.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, u ProfileUpdate) (domain.Account, error) {
	// 1. Validate whatever was sent
	if u.Handle != nil {
		h := strings.TrimSpace(*u.Handle)
		u.Handle = &h
		if err := checkField("handle", h, handleRules); err != nil {
			return domain.Account{}, err
		}
	}
	if u.Address != nil {
		a := normalizeAddress(*u.Address)
		u.Address = &a
		if err := checkField("email", a, addressRules); err != nil {
			return domain.Account{}, err
		}
	}
	if u.Bio != nil {
		b := strings.TrimSpace(*u.Bio)
		u.Bio = &b
		if err := checkField("bio", b, bioRules); err != nil {
			return domain.Account{}, err
		}
	}

	now := s.now()
	var account domain.Account

	// 2. Merge and write in one transaction
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if u.Handle != nil {
			account.Handle = *u.Handle
		}
		if u.Address != nil {
			account.Address = *u.Address
		}
		if u.Bio != nil {
			account.Bio = *u.Bio
		}
		account.UpdatedAt = now
		return tx.Accounts().UpdateProfile(ctx, account.ID, account.Handle, account.Address, account.Bio, now)
	})
	if err != nil {
		return domain.Account{}, storeError(err)
	}
	return account, nil
}

// Profile returns the account with its follow counts.
func (s *AccountService) Profile(ctx context.Context, accountID string) (domain.Profile, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.Profile{}, storeError(err)
	}
	followers, err := s.Store.Follows().CountFollowers(ctx, accountID)
	if err != nil {
		return domain.Profile{}, storeError(err)
	}
	following, err := s.Store.Follows().CountFollowing(ctx, accountID)
	if err != nil {
		return domain.Profile{}, storeError(err)
	}
	return domain.Profile{Account: account, FollowerCount: followers, FollowingCount: following}, nil
}

// Search finds up to SearchLimit accounts whose handle contains query.
func (s *AccountService) Search(ctx context.Context, query string) ([]domain.AccountSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.AccountSummary{}, nil
	}
	out, err := s.Store.Accounts().Search(ctx, query, SearchLimit)
	return out, storeError(err)
}

// SetRole changes an account's global role. Tokens issued under the old
// role stop resolving at the gate.
func (s *AccountService) SetRole(ctx context.Context, accountID string, role domain.Role) (domain.Account, error) {
	if !role.Valid() {
		return domain.Account{}, &ValidationError{Field: "role", Reason: "must be USER or ADMIN"}
	}

	now := s.now()
	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdateRole(ctx, accountID, role, now); err != nil {
			return err
		}
		var err error
		account, err = tx.Accounts().GetAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		return domain.Account{}, storeError(err)
	}

	slogx.FromContext(ctx).Info("role changed",
		slog.String("account_id", accountID),
		slog.String("role", string(role)),
	)
	return account, nil
}

// ExpireStaleCodes clears every code already past its expiry. Running it
// twice, or next to a live login, is harmless.
func (s *AccountService) ExpireStaleCodes(ctx context.Context) (int64, error) {
	n, err := s.Store.Accounts().ClearExpiredCodes(ctx, s.now())
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

func (s *AccountService) deliver(ctx context.Context, a domain.Account, code domain.VerificationCode) {
	if s.Mailer == nil {
		return
	}
	body := mail.VerificationBody(a.Handle, code.Code, s.codeTTL())
	if err := s.Mailer.Send(ctx, a.Address, mail.VerificationSubject, body); err != nil {
		slogx.FromContext(ctx).Warn("verification mail not delivered",
			slog.String("account_id", a.ID),
			slog.Any("error", err),
		)
	}
}
