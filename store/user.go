package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// ByUsername returns the user and their bcrypt password hash.
func (us *UserService) ByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	row := us.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, created_at, updated_at FROM users WHERE username = ?`,
		username)
	var u domain.User
	var hash string
	err := row.Scan(&u.ID, &u.Username, &hash, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("user by username: %w", err)
	}
	return &u, hash, nil
}

func (us *UserService) Create(ctx context.Context, u domain.User, passwordHash string) error {
	res, err := us.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, passwordHash, u.Email, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user not created")
	}
	return nil
}

func (us *UserService) Exists(ctx context.Context, username string) (bool, error) {
	var count int
	err := us.db.QueryRowContext(ctx,
		`SELECT COUNT(username) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}
