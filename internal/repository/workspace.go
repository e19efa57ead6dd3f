// Package repository implements the domain repository ports on SQLite.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"layman-go/internal/domain"
)

var _ domain.WorkspaceRepository = (*WorkspaceRepo)(nil)

// WorkspaceRepo implements domain.WorkspaceRepository using SQLite.
type WorkspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepo creates a new WorkspaceRepo.
func NewWorkspaceRepo(db *sql.DB) *WorkspaceRepo {
	return &WorkspaceRepo{db: db}
}

// Exists reports whether the workspace row is present.
func (r *WorkspaceRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workspaces WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query workspace %q: %w", name, err)
	}
	return n > 0, nil
}

// IsPersonal reports whether a registered user of this name exists.
func (r *WorkspaceRepo) IsPersonal(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query user %q: %w", name, err)
	}
	return n > 0, nil
}

// EnsureWorkspace creates the workspace row if missing.
func (r *WorkspaceRepo) EnsureWorkspace(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workspaces (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("ensure workspace %q: %w", name, err)
	}
	return nil
}

// EnsureUser creates the user row if missing.
func (r *WorkspaceRepo) EnsureUser(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("ensure user %q: %w", name, err)
	}
	return nil
}

// ListUsers returns all registered users ordered by name.
func (r *WorkspaceRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
