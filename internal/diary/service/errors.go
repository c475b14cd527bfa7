package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/reelbook/internal/diary/store"
)

// Every error a service returns is, or wraps, one of these. The message is
// the stable code clients see.
var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not_found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAlreadyVerified    = errors.New("already_verified")
	ErrCodeExpired        = errors.New("code_expired")
	ErrCodeMismatch       = errors.New("code_mismatch")
	ErrAlreadyFollowing   = errors.New("already_following")
	ErrNotFollowing       = errors.New("not_following")
	ErrSelfFollow         = errors.New("self_follow")
	ErrAlreadyMember      = errors.New("already_member")
	ErrNotMember          = errors.New("not_member")
	ErrCreatorCannotLeave = errors.New("creator_cannot_leave")
	ErrUnavailable        = errors.New("unavailable")
)

var kinds = []error{
	ErrInvalidInput, ErrConflict, ErrNotFound, ErrUnauthorized, ErrForbidden,
	ErrInvalidCredentials, ErrAlreadyVerified, ErrCodeExpired, ErrCodeMismatch,
	ErrAlreadyFollowing, ErrNotFollowing, ErrSelfFollow, ErrAlreadyMember,
	ErrNotMember, ErrCreatorCannotLeave, ErrUnavailable,
}

// Kind returns the sentinel err belongs to, or nil for an unclassified error.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// storeError translates store failures into the service taxonomy. Errors
// that already belong to it pass through untouched, so it is safe to apply
// to whatever WithTx returns.
func storeError(err error) error {
	if err == nil || Kind(err) != nil {
		return err
	}
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrReference):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		if field := conflictField(err); field != "" {
			return fmt.Errorf("%w: %s already taken", ErrConflict, field)
		}
		return ErrConflict
	case errors.Is(err, store.ErrConstraint):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// conflictField turns "accounts.handle" into "handle".
func conflictField(err error) string {
	target := store.ConflictTarget(err)
	if _, col, ok := strings.Cut(target, "."); ok && !strings.Contains(col, ",") {
		return col
	}
	return ""
}
