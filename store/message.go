package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

type MessageService struct {
	db *sql.DB
}

func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

func (ms *MessageService) Save(ctx context.Context, m domain.Message) error {
	_, err := ms.db.ExecContext(ctx,
		`INSERT INTO messages (id, first_name, last_name, email, phone, category, body, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.FirstName, m.LastName, m.Email, m.Phone, m.Category, m.Body, m.SubmittedAt)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (ms *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	rows, err := ms.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, phone, category, body, submitted_at
		 FROM messages ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
			&m.Category, &m.Body, &m.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (ms *MessageService) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := ms.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}
