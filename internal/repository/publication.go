package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"layman-go/internal/domain"
)

var _ domain.PublicationRepository = (*PublicationRepo)(nil)

// PublicationRepo implements domain.PublicationRepository using SQLite.
// Access rights are stored in the publication_rights side table and
// hydrated onto every returned Publication.
type PublicationRepo struct {
	db *sql.DB
}

// NewPublicationRepo creates a new PublicationRepo.
func NewPublicationRepo(db *sql.DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

const publicationColumns = `uuid, workspace, type, name, title, created_at, updated_at`

// GetInfo returns the publication identified by (workspace, type, name),
// or nil when it does not exist.
func (r *PublicationRepo) GetInfo(ctx context.Context, workspace, ptype, name string) (*domain.Publication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+publicationColumns+` FROM publications
		 WHERE workspace = ? AND type = ? AND name = ?`, workspace, ptype, name)
	return r.scanOne(ctx, row)
}

// GetInfoByUUID returns the publication with the given UUID, or nil.
func (r *PublicationRepo) GetInfoByUUID(ctx context.Context, uuid string) (*domain.Publication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE uuid = ?`, uuid)
	return r.scanOne(ctx, row)
}

// List returns publications of one type within a workspace, ordered by name.
func (r *PublicationRepo) List(ctx context.Context, workspace, ptype string) ([]domain.Publication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+publicationColumns+` FROM publications
		 WHERE workspace = ? AND type = ? ORDER BY name`, workspace, ptype)
	if err != nil {
		return nil, fmt.Errorf("list publications in %q: %w", workspace, err)
	}
	return r.scanMany(ctx, rows)
}

// ListAll returns every publication ordered by workspace, type, name.
func (r *PublicationRepo) ListAll(ctx context.Context) ([]domain.Publication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+publicationColumns+` FROM publications ORDER BY workspace, type, name`)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	return r.scanMany(ctx, rows)
}

// Create inserts the publication and its access rights in one transaction.
// Returns a type-specific ConflictError when the name is already taken.
func (r *PublicationRepo) Create(ctx context.Context, p *domain.Publication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create publication: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO publications (uuid, workspace, type, name, title) VALUES (?, ?, ?, ?, ?)`,
		p.UUID, p.Workspace, p.Type, p.Name, p.Title)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.ErrPublicationExists(p.Type, p.Workspace, p.Name)
		}
		return fmt.Errorf("insert publication %s/%s: %w", p.Workspace, p.Name, err)
	}

	if err := insertRights(ctx, tx, p.UUID, p.AccessRights); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateAccessRights replaces the publication's stored access rights.
func (r *PublicationRepo) UpdateAccessRights(ctx context.Context, uuid string, rights domain.AccessRights) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update rights: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM publication_rights WHERE publication_uuid = ?`, uuid); err != nil {
		return fmt.Errorf("clear rights for %s: %w", uuid, err)
	}
	if err := insertRights(ctx, tx, uuid, rights); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE publications SET updated_at = CURRENT_TIMESTAMP WHERE uuid = ?`, uuid); err != nil {
		return fmt.Errorf("touch publication %s: %w", uuid, err)
	}

	return tx.Commit()
}

// UpdateTitle replaces the publication title.
func (r *PublicationRepo) UpdateTitle(ctx context.Context, uuid, title string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE publications SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE uuid = ?`,
		title, uuid); err != nil {
		return fmt.Errorf("update title for %s: %w", uuid, err)
	}
	return nil
}

// Delete removes the publication; rights rows cascade.
func (r *PublicationRepo) Delete(ctx context.Context, uuid string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM publications WHERE uuid = ?`, uuid); err != nil {
		return fmt.Errorf("delete publication %s: %w", uuid, err)
	}
	return nil
}

func insertRights(ctx context.Context, tx *sql.Tx, uuid string, rights domain.AccessRights) error {
	for kind, principals := range map[string][]string{"read": rights.Read, "write": rights.Write} {
		for _, principal := range principals {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO publication_rights (publication_uuid, kind, principal)
				 VALUES (?, ?, ?) ON CONFLICT DO NOTHING`, uuid, kind, principal)
			if err != nil {
				return fmt.Errorf("insert %s right for %s: %w", kind, uuid, err)
			}
		}
	}
	return nil
}

func (r *PublicationRepo) scanOne(ctx context.Context, row *sql.Row) (*domain.Publication, error) {
	var p domain.Publication
	err := row.Scan(&p.UUID, &p.Workspace, &p.Type, &p.Name, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan publication: %w", err)
	}
	if err := r.loadRights(ctx, []*domain.Publication{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PublicationRepo) scanMany(ctx context.Context, rows *sql.Rows) ([]domain.Publication, error) {
	defer rows.Close()

	var pubs []domain.Publication
	for rows.Next() {
		var p domain.Publication
		if err := rows.Scan(&p.UUID, &p.Workspace, &p.Type, &p.Name, &p.Title, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Publication, len(pubs))
	for i := range pubs {
		refs[i] = &pubs[i]
	}
	if err := r.loadRights(ctx, refs); err != nil {
		return nil, err
	}
	return pubs, nil
}

// loadRights hydrates access rights for the given publications in a single
// query.
func (r *PublicationRepo) loadRights(ctx context.Context, pubs []*domain.Publication) error {
	if len(pubs) == 0 {
		return nil
	}

	byUUID := make(map[string]*domain.Publication, len(pubs))
	placeholders := make([]string, 0, len(pubs))
	args := make([]any, 0, len(pubs))
	for _, p := range pubs {
		byUUID[p.UUID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.UUID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT publication_uuid, kind, principal FROM publication_rights
		 WHERE publication_uuid IN (`+strings.Join(placeholders, ",")+`)
		 ORDER BY principal`, args...)
	if err != nil {
		return fmt.Errorf("load access rights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uuid, kind, principal string
		if err := rows.Scan(&uuid, &kind, &principal); err != nil {
			return err
		}
		p := byUUID[uuid]
		if p == nil {
			continue
		}
		switch kind {
		case "read":
			p.AccessRights.Read = append(p.AccessRights.Read, principal)
		case "write":
			p.AccessRights.Write = append(p.AccessRights.Write, principal)
		}
	}
	return rows.Err()
}
