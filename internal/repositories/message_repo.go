package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.SenderID, m.ReceiverID, m.Content).Scan(&m.ID, &m.CreatedAt)
}

// Delete removes a message if the caller sent it and reports whether a row
// was removed.
func (r *MessageRepo) Delete(ctx context.Context, id, senderID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM messages WHERE id = $1 AND sender_id = $2
	`, id, senderID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Conversation returns the two-way message history between two users, oldest
// first.
func (r *MessageRepo) Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, content, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at
		LIMIT $3
	`, a, b, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
