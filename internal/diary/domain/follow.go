package domain

import "time"

// FollowEdge is one direction of interest; mutual follows are two edges.
type FollowEdge struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}
