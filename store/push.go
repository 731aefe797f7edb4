package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

type PushService struct {
	db *sql.DB
}

func NewPushService(db *sql.DB) *PushService {
	return &PushService{db: db}
}

// Save registers a subscription; re-registering an endpoint refreshes
// its keys.
func (ps *PushService) Save(ctx context.Context, s domain.PushSubscription) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO push_subscriptions (endpoint, p256dh, auth, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(endpoint) DO UPDATE SET p256dh = excluded.p256dh, auth = excluded.auth`,
		s.Endpoint, s.P256dh, s.Auth, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("save push subscription: %w", err)
	}
	return nil
}

func (ps *PushService) List(ctx context.Context) ([]domain.PushSubscription, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT endpoint, p256dh, auth, created_at FROM push_subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (ps *PushService) Delete(ctx context.Context, endpoint string) error {
	_, err := ps.db.ExecContext(ctx,
		`DELETE FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
