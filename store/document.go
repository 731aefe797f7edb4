package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"veranda/domain"
)

// The resume and site settings are whole-document entities, saved and
// replaced as single JSON rows.
const (
	docResume   = "resume"
	docSettings = "settings"
)

func getDocument(ctx context.Context, db *sql.DB, name string, out any) (bool, error) {
	var body string
	err := db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get document %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return false, fmt.Errorf("decode document %q: %w", name, err)
	}
	return true, nil
}

func putDocument(ctx context.Context, db *sql.DB, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", name, err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put document %q: %w", name, err)
	}
	return nil
}

type SettingsService struct {
	db *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get falls back to defaults when no settings were saved yet, so the
// public site always renders.
func (ss *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	found, err := getDocument(ctx, ss.db, docSettings, &s)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(), nil
	}
	return s, nil
}

func (ss *SettingsService) Save(ctx context.Context, s domain.Settings) error {
	return putDocument(ctx, ss.db, docSettings, s)
}

type ResumeService struct {
	db *sql.DB
}

func NewResumeService(db *sql.DB) *ResumeService {
	return &ResumeService{db: db}
}

func (rs *ResumeService) Get(ctx context.Context) (domain.Resume, error) {
	var r domain.Resume
	if _, err := getDocument(ctx, rs.db, docResume, &r); err != nil {
		return domain.Resume{}, err
	}
	return r, nil
}

func (rs *ResumeService) Save(ctx context.Context, r domain.Resume) error {
	return putDocument(ctx, rs.db, docResume, r)
}
