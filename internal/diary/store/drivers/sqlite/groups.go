package sqlite

import (
	"context"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO movie_groups (id, name, description, creator_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Description, g.CreatorID, toUnix(g.CreatedAt),
	)
	return mapError(err)
}

func (r *groupsRepo) GetGroupByID(ctx context.Context, id string) (domain.Group, error) {
	var (
		g         domain.Group
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, creator_id, created_at FROM movie_groups WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.CreatorID, &createdAt)
	if err != nil {
		return domain.Group{}, mapError(err)
	}
	g.CreatedAt = fromUnix(createdAt)
	return g, nil
}

func (r *groupsRepo) AddMember(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, account_id, role, joined_at)
		VALUES (?, ?, ?, ?)`,
		m.GroupID, m.AccountID, string(m.Role), toUnix(m.JoinedAt),
	)
	return mapError(err)
}

func (r *groupsRepo) RemoveMember(ctx context.Context, groupID, accountID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND account_id = ?`,
		groupID, accountID,
	))
}

func (r *groupsRepo) GetMembership(ctx context.Context, groupID, accountID string) (domain.Membership, error) {
	var (
		m        domain.Membership
		role     string
		joinedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT m.group_id, m.account_id, a.handle, m.role, m.joined_at
		FROM group_members m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.group_id = ? AND m.account_id = ?`,
		groupID, accountID,
	).Scan(&m.GroupID, &m.AccountID, &m.Handle, &role, &joinedAt)
	if err != nil {
		return domain.Membership{}, mapError(err)
	}
	m.Role = domain.MemberRole(role)
	m.JoinedAt = fromUnix(joinedAt)
	return m, nil
}

func (r *groupsRepo) SetMemberRole(ctx context.Context, groupID, accountID string, role domain.MemberRole) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE group_members SET role = ? WHERE group_id = ? AND account_id = ?`,
		string(role), groupID, accountID,
	))
}

func (r *groupsRepo) ListMembers(ctx context.Context, groupID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.group_id, m.account_id, a.handle, m.role, m.joined_at
		FROM group_members m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.group_id = ?
		ORDER BY m.joined_at, m.rowid`,
		groupID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.Membership{}
	for rows.Next() {
		var (
			m        domain.Membership
			role     string
			joinedAt int64
		)
		if err := rows.Scan(&m.GroupID, &m.AccountID, &m.Handle, &role, &joinedAt); err != nil {
			return nil, err
		}
		m.Role = domain.MemberRole(role)
		m.JoinedAt = fromUnix(joinedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *groupsRepo) ListGroupsForAccount(ctx context.Context, accountID string) ([]domain.GroupSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.description, g.creator_id, g.created_at, mine.role,
		       (SELECT COUNT(*) FROM group_members c WHERE c.group_id = g.id)
		FROM group_members mine
		JOIN movie_groups g ON g.id = mine.group_id
		WHERE mine.account_id = ?
		ORDER BY g.created_at DESC, g.id DESC`,
		accountID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.GroupSummary{}
	for rows.Next() {
		var (
			s         domain.GroupSummary
			role      string
			createdAt int64
		)
		if err := rows.Scan(
			&s.Group.ID, &s.Group.Name, &s.Group.Description, &s.Group.CreatorID, &createdAt,
			&role, &s.MemberCount,
		); err != nil {
			return nil, err
		}
		s.Group.CreatedAt = fromUnix(createdAt)
		s.Role = domain.MemberRole(role)
		out = append(out, s)
	}
	return out, rows.Err()
}
