package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

// SocialService owns follow edges. An edge is one direction only; two
// accounts following each other hold two edges.
type SocialService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *SocialService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Follow adds the edge follower -> followee. Concurrent calls for the same
// pair produce one success; the rest get ErrAlreadyFollowing.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Both ends must exist
		if _, err := tx.Accounts().GetAccountByID(ctx, followerID); err != nil {
			return err
		}
		if _, err := tx.Accounts().GetAccountByID(ctx, followeeID); err != nil {
			return err
		}

		// 2. The primary key rejects a duplicate edge
		err := tx.Follows().CreateFollow(ctx, domain.FollowEdge{
			FollowerID: followerID,
			FolloweeID: followeeID,
			CreatedAt:  s.now(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyFollowing
		}
		return err
	})
	if err != nil {
		return storeError(err)
	}

	slogx.FromContext(ctx).Info("follow created",
		slog.String("follower_id", followerID),
		slog.String("followee_id", followeeID),
	)
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	err := s.Store.Follows().DeleteFollow(ctx, followerID, followeeID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFollowing
	}
	return storeError(err)
}

// Followers lists who follows accountID, oldest edge first.
func (s *SocialService) Followers(ctx context.Context, accountID string) ([]domain.AccountSummary, error) {
	if err := s.exists(ctx, accountID); err != nil {
		return nil, err
	}
	out, err := s.Store.Follows().ListFollowers(ctx, accountID)
	return out, storeError(err)
}

// Following lists who accountID follows, oldest edge first.
func (s *SocialService) Following(ctx context.Context, accountID string) ([]domain.AccountSummary, error) {
	if err := s.exists(ctx, accountID); err != nil {
		return nil, err
	}
	out, err := s.Store.Follows().ListFollowing(ctx, accountID)
	return out, storeError(err)
}

// Counts returns how many accounts follow accountID and how many it follows.
func (s *SocialService) Counts(ctx context.Context, accountID string) (followers, following int, err error) {
	if err := s.exists(ctx, accountID); err != nil {
		return 0, 0, err
	}
	if followers, err = s.Store.Follows().CountFollowers(ctx, accountID); err != nil {
		return 0, 0, storeError(err)
	}
	if following, err = s.Store.Follows().CountFollowing(ctx, accountID); err != nil {
		return 0, 0, storeError(err)
	}
	return followers, following, nil
}

func (s *SocialService) exists(ctx context.Context, accountID string) error {
	_, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	return storeError(err)
}
