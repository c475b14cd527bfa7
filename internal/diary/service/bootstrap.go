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

// AdminSeed is the operator account created on first start.
type AdminSeed struct {
	Handle   string `json:"handle" validate:"required,min=3,max=10,handle"`
	Address  string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,min=8,max=128,password"`
}

// BootstrapService seeds a verified ADMIN so a fresh install can reach the
// admin routes without going through mail.
type BootstrapService struct {
	Store  store.Store
	Hasher PasswordHasher
	Now    func() time.Time
}

// EnsureAdmin creates the seed account unless its handle already exists.
// It reports whether an account was created.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	l := slogx.FromContext(ctx)

	seed.Handle = strings.TrimSpace(seed.Handle)
	seed.Address = normalizeAddress(seed.Address)

	// 1. Validate the seed like any registration
	if err := checkStruct(seed); err != nil {
		return false, err
	}

	// 2. Skip when already seeded
	if _, err := s.Store.Accounts().GetAccountByHandle(ctx, seed.Handle); err == nil {
		l.Debug("admin seed already present", slog.String("handle", seed.Handle))
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, storeError(err)
	}

	// 3. Hash and insert
	hash, err := s.Hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Handle:       seed.Handle,
		Address:      seed.Address,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		// Another replica won the race.
		if errors.Is(err, store.ErrAlreadyExists) {
			return false, nil
		}
		return false, storeError(err)
	}

	l.Info("admin account seeded",
		slog.String("account_id", account.ID),
		slog.String("handle", account.Handle),
	)
	return true, nil
}
