package service

import (
	"context"
	"testing"

	"layman-go/internal/config"
	"layman-go/internal/domain"
)

// === Workspace repository mock ===

type mockWorkspaceRepo struct {
	existsFn          func(ctx context.Context, name string) (bool, error)
	isPersonalFn      func(ctx context.Context, name string) (bool, error)
	ensureWorkspaceFn func(ctx context.Context, name string) error
	ensureUserFn      func(ctx context.Context, name string) error
	listUsersFn       func(ctx context.Context) ([]domain.User, error)
}

func (m *mockWorkspaceRepo) Exists(ctx context.Context, name string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	panic("unexpected call to mockWorkspaceRepo.Exists")
}

func (m *mockWorkspaceRepo) IsPersonal(ctx context.Context, name string) (bool, error) {
	if m.isPersonalFn != nil {
		return m.isPersonalFn(ctx, name)
	}
	panic("unexpected call to mockWorkspaceRepo.IsPersonal")
}

func (m *mockWorkspaceRepo) EnsureWorkspace(ctx context.Context, name string) error {
	if m.ensureWorkspaceFn != nil {
		return m.ensureWorkspaceFn(ctx, name)
	}
	panic("unexpected call to mockWorkspaceRepo.EnsureWorkspace")
}

func (m *mockWorkspaceRepo) EnsureUser(ctx context.Context, name string) error {
	if m.ensureUserFn != nil {
		return m.ensureUserFn(ctx, name)
	}
	panic("unexpected call to mockWorkspaceRepo.EnsureUser")
}

func (m *mockWorkspaceRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	panic("unexpected call to mockWorkspaceRepo.ListUsers")
}

// === Publication repository mock ===

type mockPublicationRepo struct {
	getInfoFn            func(ctx context.Context, workspace, ptype, name string) (*domain.Publication, error)
	getInfoByUUIDFn      func(ctx context.Context, uuid string) (*domain.Publication, error)
	listFn               func(ctx context.Context, workspace, ptype string) ([]domain.Publication, error)
	listAllFn            func(ctx context.Context) ([]domain.Publication, error)
	createFn             func(ctx context.Context, p *domain.Publication) error
	updateAccessRightsFn func(ctx context.Context, uuid string, rights domain.AccessRights) error
	updateTitleFn        func(ctx context.Context, uuid, title string) error
	deleteFn             func(ctx context.Context, uuid string) error
}

func (m *mockPublicationRepo) GetInfo(ctx context.Context, workspace, ptype, name string) (*domain.Publication, error) {
	if m.getInfoFn != nil {
		return m.getInfoFn(ctx, workspace, ptype, name)
	}
	panic("unexpected call to mockPublicationRepo.GetInfo")
}

func (m *mockPublicationRepo) GetInfoByUUID(ctx context.Context, uuid string) (*domain.Publication, error) {
	if m.getInfoByUUIDFn != nil {
		return m.getInfoByUUIDFn(ctx, uuid)
	}
	panic("unexpected call to mockPublicationRepo.GetInfoByUUID")
}

func (m *mockPublicationRepo) List(ctx context.Context, workspace, ptype string) ([]domain.Publication, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspace, ptype)
	}
	panic("unexpected call to mockPublicationRepo.List")
}

func (m *mockPublicationRepo) ListAll(ctx context.Context) ([]domain.Publication, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	panic("unexpected call to mockPublicationRepo.ListAll")
}

func (m *mockPublicationRepo) Create(ctx context.Context, p *domain.Publication) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	panic("unexpected call to mockPublicationRepo.Create")
}

func (m *mockPublicationRepo) UpdateAccessRights(ctx context.Context, uuid string, rights domain.AccessRights) error {
	if m.updateAccessRightsFn != nil {
		return m.updateAccessRightsFn(ctx, uuid, rights)
	}
	panic("unexpected call to mockPublicationRepo.UpdateAccessRights")
}

func (m *mockPublicationRepo) UpdateTitle(ctx context.Context, uuid, title string) error {
	if m.updateTitleFn != nil {
		return m.updateTitleFn(ctx, uuid, title)
	}
	panic("unexpected call to mockPublicationRepo.UpdateTitle")
}

func (m *mockPublicationRepo) Delete(ctx context.Context, uuid string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, uuid)
	}
	panic("unexpected call to mockPublicationRepo.Delete")
}

// === Role repository mock ===

type mockRoleRepo struct {
	rolesForUserFn  func(ctx context.Context, username string) ([]string, error)
	listRoleNamesFn func(ctx context.Context) ([]string, error)
}

func (m *mockRoleRepo) RolesForUser(ctx context.Context, username string) ([]string, error) {
	if m.rolesForUserFn != nil {
		return m.rolesForUserFn(ctx, username)
	}
	panic("unexpected call to mockRoleRepo.RolesForUser")
}

func (m *mockRoleRepo) ListRoleNames(ctx context.Context) ([]string, error) {
	if m.listRoleNamesFn != nil {
		return m.listRoleNamesFn(ctx)
	}
	panic("unexpected call to mockRoleRepo.ListRoleNames")
}

// === Helpers ===

// roleMap builds a RolesForUser func from a static membership table.
func roleMap(memberships map[string][]string) func(ctx context.Context, username string) ([]string, error) {
	return func(_ context.Context, username string) ([]string, error) {
		return memberships[username], nil
	}
}

func defaultTestPolicy() config.AccessPolicy {
	return config.AccessPolicy{
		GrantCreatePublicWorkspace:    []string{domain.EveryoneRole},
		GrantPublishInPublicWorkspace: []string{domain.EveryoneRole},
		DefaultReadRights:             []string{domain.EveryoneRole},
		DefaultWriteRights:            []string{domain.EveryoneRole},
		RoleNamePattern:               config.DefaultRoleNamePattern,
	}
}

// newTestAuthz wires an AuthorizationService from mocks.
func newTestAuthz(t *testing.T, ws domain.WorkspaceRepository, pubs domain.PublicationRepository, roles domain.RoleRepository, policy config.AccessPolicy) *AuthorizationService {
	t.Helper()
	roleSvc, err := NewRoleService(roles, policy.RoleNamePattern)
	if err != nil {
		t.Fatalf("new role service: %v", err)
	}
	nameRule, err := NewWorkspaceNameRule(config.DefaultWorkspaceNamePattern, policy.ReservedWorkspaceNames)
	if err != nil {
		t.Fatalf("new workspace name rule: %v", err)
	}
	return NewAuthorizationService(ws, pubs, roleSvc, policy, nameRule)
}
