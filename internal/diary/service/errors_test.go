package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/stretchr/testify/require"
)

func TestStoreErrorTranslation(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"not found", store.ErrNotFound, ErrNotFound},
		{"dangling reference", &store.ConstraintError{Err: store.ErrReference}, ErrNotFound},
		{"unique", &store.ConstraintError{Target: "accounts.handle", Err: store.ErrAlreadyExists}, ErrConflict},
		{"other constraint", &store.ConstraintError{Err: store.ErrConstraint}, ErrConflict},
		{"engine failure", errors.New("disk full"), ErrUnavailable},
		{"already classified", fmt.Errorf("wrapped: %w", ErrSelfFollow), ErrSelfFollow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := storeError(tc.in)
			require.ErrorIs(t, got, tc.want)
			require.Equal(t, tc.want, Kind(got))
		})
	}
	require.NoError(t, storeError(nil))
}

func TestConflictNamesTheField(t *testing.T) {
	err := storeError(&store.ConstraintError{Target: "accounts.address", Err: store.ErrAlreadyExists})
	require.EqualError(t, err, "conflict: address already taken")

	err = storeError(&store.ConstraintError{Target: "follows.follower_id, follows.followee_id", Err: store.ErrAlreadyExists})
	require.EqualError(t, err, "conflict")
}

func TestValidationErrorIsInvalidInput(t *testing.T) {
	err := checkField("bio", string(make([]byte, 300)), bioRules)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "bio", verr.Field)
	require.Equal(t, "must be at most 250 characters", verr.Reason)
}

func TestErrorCodesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range kinds {
		require.False(t, seen[k.Error()], k.Error())
		seen[k.Error()] = true
	}
}
