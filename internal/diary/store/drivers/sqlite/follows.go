package sqlite

import (
	"context"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
)

type followsRepo struct {
	db dbtx
}

func (r *followsRepo) CreateFollow(ctx context.Context, e domain.FollowEdge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		e.FollowerID, e.FolloweeID, toUnix(e.CreatedAt),
	)
	return mapError(err)
}

func (r *followsRepo) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID,
	))
}

func (r *followsRepo) ListFollowers(ctx context.Context, id string) ([]domain.AccountSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.handle, a.bio
		FROM follows f
		JOIN accounts a ON a.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY f.created_at, a.id`,
		id,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return scanSummaries(rows)
}

func (r *followsRepo) ListFollowing(ctx context.Context, id string) ([]domain.AccountSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.handle, a.bio
		FROM follows f
		JOIN accounts a ON a.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at, a.id`,
		id,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return scanSummaries(rows)
}

func (r *followsRepo) CountFollowers(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE followee_id = ?`, id).Scan(&n)
	return n, mapError(err)
}

func (r *followsRepo) CountFollowing(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, id).Scan(&n)
	return n, mapError(err)
}
