// Package service implements the authorization engine and publication
// orchestration over the domain repository ports.
package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"layman-go/internal/domain"
)

// RoleService resolves role memberships from the external role store.
// Reserved role literals and USER_-prefixed roles are excluded by the
// store query itself; the configured allow-pattern is applied here on top
// of that.
type RoleService struct {
	repo    domain.RoleRepository
	pattern *regexp.Regexp
}

// NewRoleService creates a RoleService with the given allow-list pattern
// for role names.
func NewRoleService(repo domain.RoleRepository, rolePattern string) (*RoleService, error) {
	re, err := regexp.Compile(rolePattern)
	if err != nil {
		return nil, fmt.Errorf("compile role name pattern: %w", err)
	}
	return &RoleService{repo: repo, pattern: re}, nil
}

// GetRoles returns the set of role names held by username. Empty when the
// user has no roles or does not exist. Store failures propagate.
func (s *RoleService) GetRoles(ctx context.Context, username string) (mapset.Set[string], error) {
	names, err := s.repo.RolesForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	roles := mapset.NewThreadUnsafeSet[string]()
	for _, name := range names {
		if s.pattern.MatchString(name) {
			roles.Add(name)
		}
	}
	return roles, nil
}

// GetAllRoles returns every assignable role name sorted alphabetically,
// with the EVERYONE pseudo-role appended at the end. Discovery endpoint
// use case; authorization decisions never call this.
func (s *RoleService) GetAllRoles(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListRoleNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names)+1)
	for _, name := range names {
		if s.pattern.MatchString(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return append(out, domain.EveryoneRole), nil
}
