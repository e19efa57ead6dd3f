package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"layman-go/internal/domain"
)

var _ domain.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implements domain.RoleRepository using SQLite. The role schema
// is maintained by the external role service; this repo only reads it.
//
// Reserved role literals and auto-generated per-user roles (USER_ prefix)
// are filtered out in the queries themselves, per the role-service
// contract.
type RoleRepo struct {
	db *sql.DB
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

const roleExclusions = `
	role_name NOT IN (?, ?, ?)
	AND role_name NOT LIKE ? ESCAPE '\'`

func roleExclusionArgs() []any {
	// LIKE pattern for the per-user prefix, with its underscore escaped.
	prefixPattern := strings.ReplaceAll(domain.UserRolePrefix, "_", `\_`) + "%"
	return []any{
		domain.RoleAdmin,
		domain.RoleGroupAdmin,
		domain.RoleGeoserverAdmin,
		prefixPattern,
	}
}

// RolesForUser returns the role names held by username, excluding reserved
// roles. Empty when the user has no roles or does not exist.
func (r *RoleRepo) RolesForUser(ctx context.Context, username string) ([]string, error) {
	args := append([]any{username}, roleExclusionArgs()...)
	rows, err := r.db.QueryContext(ctx,
		`SELECT role_name FROM user_roles WHERE username = ? AND`+roleExclusions+
			` ORDER BY role_name`, args...)
	if err != nil {
		return nil, fmt.Errorf("query roles for %q: %w", username, err)
	}
	return scanStrings(rows)
}

// ListRoleNames returns all distinct non-reserved role names in the store.
func (r *RoleRepo) ListRoleNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT role_name FROM user_roles WHERE`+roleExclusions+
			` ORDER BY role_name`, roleExclusionArgs()...)
	if err != nil {
		return nil, fmt.Errorf("query role names: %w", err)
	}
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
