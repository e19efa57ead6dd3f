// Package app provides application-level wiring for the catalog service.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"layman-go/internal/config"
	"layman-go/internal/domain"
	"layman-go/internal/repository"
	"layman-go/internal/service"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App holds the fully-wired application: services plus the repositories
// the router and auth middleware need directly.
type App struct {
	Authorization *service.AuthorizationService
	Publications  *service.PublicationService
	Roles         *service.RoleService
	Workspaces    domain.WorkspaceRepository
}

// New wires all repositories and services from the provided deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories: mutations go through the write pool, the role store
	// and read-heavy lookups through the read pool.
	workspaceRepo := repository.NewWorkspaceRepo(deps.WriteDB)
	publicationRepo := repository.NewPublicationRepo(deps.WriteDB)
	roleRepo := repository.NewRoleRepo(deps.ReadDB)

	roleSvc, err := service.NewRoleService(roleRepo, cfg.Policy.RoleNamePattern)
	if err != nil {
		return nil, fmt.Errorf("role service: %w", err)
	}

	nameRule, err := service.NewWorkspaceNameRule(
		config.DefaultWorkspaceNamePattern, cfg.Policy.ReservedWorkspaceNames)
	if err != nil {
		return nil, fmt.Errorf("workspace name rule: %w", err)
	}

	authzSvc := service.NewAuthorizationService(
		workspaceRepo, publicationRepo, roleSvc, cfg.Policy, nameRule)

	publicationSvc, err := service.NewPublicationService(
		workspaceRepo, publicationRepo, authzSvc,
		domain.AccessRights{
			Read:  cfg.Policy.DefaultReadRights,
			Write: cfg.Policy.DefaultWriteRights,
		},
		config.DefaultWorkspaceNamePattern,
		deps.Logger.With("component", "publications"),
	)
	if err != nil {
		return nil, fmt.Errorf("publication service: %w", err)
	}

	return &App{
		Authorization: authzSvc,
		Publications:  publicationSvc,
		Roles:         roleSvc,
		Workspaces:    workspaceRepo,
	}, nil
}
