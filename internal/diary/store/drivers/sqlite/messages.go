package sqlite

import (
	"context"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) AppendMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_messages (id, group_id, sender_id, content, sent_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.GroupID, m.SenderID, m.Content, toUnix(m.SentAt),
	)
	return mapError(err)
}

// ListRecent breaks sent_at ties on seq, the insertion counter.
func (r *messagesRepo) ListRecent(ctx context.Context, groupID string, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.group_id, m.sender_id, a.handle, m.content, m.sent_at
		FROM group_messages m
		JOIN accounts a ON a.id = m.sender_id
		WHERE m.group_id = ?
		ORDER BY m.sent_at DESC, m.seq DESC
		LIMIT ?`,
		groupID, limit,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var (
			m      domain.Message
			sentAt int64
		)
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.SenderHandle, &m.Content, &sentAt); err != nil {
			return nil, err
		}
		m.SentAt = fromUnix(sentAt)
		out = append(out, m)
	}
	return out, rows.Err()
}
