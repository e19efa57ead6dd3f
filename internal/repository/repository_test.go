package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"layman-go/internal/db"
	"layman-go/internal/domain"
)

// setupRepos opens a migrated test database and returns the three repos
// plus the raw write handle for seeding.
func setupRepos(t *testing.T) (*WorkspaceRepo, *PublicationRepo, *RoleRepo, *sql.DB, context.Context) {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)
	return NewWorkspaceRepo(writeDB), NewPublicationRepo(writeDB), NewRoleRepo(writeDB), writeDB, context.Background()
}

func seedRole(t *testing.T, conn *sql.DB, username, role string) {
	t.Helper()
	if _, err := conn.Exec(
		`INSERT INTO user_roles (username, role_name) VALUES (?, ?)`, username, role); err != nil {
		t.Fatalf("seed role %s->%s: %v", username, role, err)
	}
}

func mustPub(t *testing.T, pubs *PublicationRepo, ws *WorkspaceRepo, ctx context.Context, p domain.Publication) {
	t.Helper()
	if err := ws.EnsureWorkspace(ctx, p.Workspace); err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	if err := pubs.Create(ctx, &p); err != nil {
		t.Fatalf("create publication %s/%s: %v", p.Workspace, p.Name, err)
	}
}
