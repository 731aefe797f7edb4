package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

type SubscriberService struct {
	db *sql.DB
}

func NewSubscriberService(db *sql.DB) *SubscriberService {
	return &SubscriberService{db: db}
}

func (ss *SubscriberService) Add(ctx context.Context, s domain.Subscriber) error {
	_, err := ss.db.ExecContext(ctx,
		`INSERT INTO subscribers (id, email, name, phone, subscribed_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Email, s.Name, s.Phone, s.SubscribedAt)
	if err != nil {
		return fmt.Errorf("add subscriber: %w", err)
	}
	return nil
}

func (ss *SubscriberService) List(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := ss.db.QueryContext(ctx,
		`SELECT id, email, name, phone, subscribed_at FROM subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Phone, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (ss *SubscriberService) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := ss.db.ExecContext(ctx,
		`DELETE FROM subscribers WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return fmt.Errorf("delete subscribers: %w", err)
	}
	return nil
}
