package store

import (
	"context"
	"database/sql"
	"fmt"

	"veranda/domain"
)

const pageColumns = `id, slug, title, content, in_sidebar, position, type, external_url, post_ids, is_protected, password, password_hint_link, is_system, path, updated_at`

type PageService struct {
	db *sql.DB
}

func NewPageService(db *sql.DB) *PageService {
	return &PageService{db: db}
}

func scanPage(row rowScanner) (*domain.Page, error) {
	var p domain.Page
	var postIDs string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.InSidebar, &p.Position,
		&p.Type, &p.ExternalURL, &postIDs, &p.IsProtected, &p.Password,
		&p.PasswordHintLink, &p.IsSystem, &p.Path, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.PostIDs, err = decodeStrings(postIDs); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every page in sidebar order.
func (ps *PageService) List(ctx context.Context) ([]domain.Page, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

func (ps *PageService) ByID(ctx context.Context, id string) (*domain.Page, error) {
	row := ps.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("page by id: %w", err)
	}
	return p, nil
}

func (ps *PageService) BySlug(ctx context.Context, slug string) (*domain.Page, error) {
	row := ps.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("page by slug: %w", err)
	}
	return p, nil
}

func (ps *PageService) Save(ctx context.Context, p domain.Page) error {
	postIDs, err := encodeStrings(p.PostIDs)
	if err != nil {
		return err
	}
	_, err = ps.db.ExecContext(ctx, `INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, title = excluded.title, content = excluded.content,
			in_sidebar = excluded.in_sidebar, position = excluded.position,
			type = excluded.type, external_url = excluded.external_url,
			post_ids = excluded.post_ids, is_protected = excluded.is_protected,
			password = excluded.password, password_hint_link = excluded.password_hint_link,
			is_system = excluded.is_system, path = excluded.path,
			updated_at = excluded.updated_at`,
		p.ID, p.Slug, p.Title, p.Content, p.InSidebar, p.Position, p.Type, p.ExternalURL,
		postIDs, p.IsProtected, p.Password, p.PasswordHintLink, p.IsSystem, p.Path, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save page %q: %w", p.ID, err)
	}
	return nil
}

func (ps *PageService) Delete(ctx context.Context, id string) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ? AND is_system = 0`, id)
	if err != nil {
		return fmt.Errorf("delete page %q: %w", id, err)
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
