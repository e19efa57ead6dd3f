package domain

import "context"

// WorkspaceRepository is the workspace/user store consulted by the
// authorizer. A workspace is public iff no user of the same name exists.
type WorkspaceRepository interface {
	// Exists reports whether the workspace has been created.
	Exists(ctx context.Context, name string) (bool, error)
	// IsPersonal reports whether a registered user of this name exists.
	IsPersonal(ctx context.Context, name string) (bool, error)
	// EnsureWorkspace creates the workspace row if missing. Idempotent.
	EnsureWorkspace(ctx context.Context, name string) error
	// EnsureUser creates the user row if missing. Idempotent.
	EnsureUser(ctx context.Context, name string) error
	// ListUsers returns all registered users ordered by name.
	ListUsers(ctx context.Context) ([]User, error)
}

// PublicationRepository is the publication-info store. Get methods return
// nil (not an error) when the publication does not exist.
type PublicationRepository interface {
	GetInfo(ctx context.Context, workspace, ptype, name string) (*Publication, error)
	GetInfoByUUID(ctx context.Context, uuid string) (*Publication, error)
	// List returns publications of one type within a workspace, ordered
	// by name.
	List(ctx context.Context, workspace, ptype string) ([]Publication, error)
	// ListAll returns every publication ordered by workspace, type, name.
	ListAll(ctx context.Context) ([]Publication, error)
	Create(ctx context.Context, p *Publication) error
	UpdateAccessRights(ctx context.Context, uuid string, rights AccessRights) error
	UpdateTitle(ctx context.Context, uuid, title string) error
	Delete(ctx context.Context, uuid string) error
}

// RoleRepository is the role-membership store. It is queried, never
// mutated, by the authorization engine. Implementations exclude the
// reserved role literals and the per-user role prefix in the query
// itself.
type RoleRepository interface {
	// RolesForUser returns the role names held by username. Empty when
	// the user has no roles or does not exist.
	RolesForUser(ctx context.Context, username string) ([]string, error)
	// ListRoleNames returns all distinct role names in the store.
	ListRoleNames(ctx context.Context) ([]string, error)
}
