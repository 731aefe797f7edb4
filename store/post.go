package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

const postColumns = `id, slug, title, excerpt, content, date, tags, thumbnail_url, pinned, status, type, is_listed, is_protected, password, password_hint_link`

type PostService struct {
	db *sql.DB
}

func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	var tags string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Date, &tags,
		&p.ThumbnailURL, &p.Pinned, &p.Status, &p.Type, &p.IsListed, &p.IsProtected,
		&p.Password, &p.PasswordHintLink)
	if err != nil {
		return nil, err
	}
	if p.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every post, newest first.
func (ps *PostService) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (ps *PostService) ByID(ctx context.Context, id string) (*domain.Post, error) {
	row := ps.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("post by id: %w", err)
	}
	return p, nil
}

func (ps *PostService) BySlug(ctx context.Context, slug string) (*domain.Post, error) {
	row := ps.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("post by slug: %w", err)
	}
	return p, nil
}

// Save inserts or replaces the post by id.
func (ps *PostService) Save(ctx context.Context, p domain.Post) error {
	tags, err := encodeStrings(p.Tags)
	if err != nil {
		return err
	}
	_, err = ps.db.ExecContext(ctx, `INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, title = excluded.title, excerpt = excluded.excerpt,
			content = excluded.content, date = excluded.date, tags = excluded.tags,
			thumbnail_url = excluded.thumbnail_url, pinned = excluded.pinned,
			status = excluded.status, type = excluded.type, is_listed = excluded.is_listed,
			is_protected = excluded.is_protected, password = excluded.password,
			password_hint_link = excluded.password_hint_link`,
		p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.Date, tags, p.ThumbnailURL,
		p.Pinned, p.Status, p.Type, p.IsListed, p.IsProtected, p.Password, p.PasswordHintLink)
	if err != nil {
		return fmt.Errorf("save post %q: %w", p.ID, err)
	}
	return nil
}

func (ps *PostService) Delete(ctx context.Context, id string) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
