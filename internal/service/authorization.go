package service

import (
	"context"
	"net/http"

	mapset "github.com/deckarep/golang-set/v2"

	"layman-go/internal/config"
	"layman-go/internal/domain"
)

// AuthorizationService is the access-control decision procedure for
// workspace and publication requests. It is stateless: every call is an
// independent evaluation against the backing stores, so concurrent use
// needs no synchronization here.
type AuthorizationService struct {
	workspaces   domain.WorkspaceRepository
	publications domain.PublicationRepository
	roles        *RoleService
	policy       config.AccessPolicy
	nameRule     *WorkspaceNameRule
}

// NewAuthorizationService creates an AuthorizationService. The policy
// object carries the public-workspace grant lists.
func NewAuthorizationService(
	workspaces domain.WorkspaceRepository,
	publications domain.PublicationRepository,
	roles *RoleService,
	policy config.AccessPolicy,
	nameRule *WorkspaceNameRule,
) *AuthorizationService {
	return &AuthorizationService{
		workspaces:   workspaces,
		publications: publications,
		roles:        roles,
		policy:       policy,
		nameRule:     nameRule,
	}
}

// AuthzRequest is one request to be authorized. An empty PublicationName
// addresses the whole collection (list, bulk delete, publish-new); an
// empty Actor is an anonymous request.
type AuthzRequest struct {
	Workspace       string
	PublicationType string
	PublicationName string
	Method          string
	Actor           string
}

// IsPrincipalAuthorized reports whether the actor satisfies the access
// rule: the rule contains EVERYONE, or lists the actor explicitly, or
// names a role the actor holds. Anonymous actors (empty name) match only
// through EVERYONE.
func (s *AuthorizationService) IsPrincipalAuthorized(ctx context.Context, actor string, rulePrincipals []string) (bool, error) {
	userNames, roleNames := domain.SplitPrincipals(rulePrincipals)

	if roleNames.Contains(domain.EveryoneRole) {
		return true, nil
	}
	if actor != "" && userNames.Contains(actor) {
		return true, nil
	}

	actorRoles := mapset.NewThreadUnsafeSet[string]()
	if actor != "" {
		var err error
		actorRoles, err = s.roles.GetRoles(ctx, actor)
		if err != nil {
			return false, err
		}
	}
	return actorRoles.Intersect(roleNames).Cardinality() > 0, nil
}

// CanCreatePublicWorkspace reports whether the actor may create a new
// public workspace by publishing into it.
func (s *AuthorizationService) CanCreatePublicWorkspace(ctx context.Context, actor string) (bool, error) {
	return s.IsPrincipalAuthorized(ctx, actor, s.policy.GrantCreatePublicWorkspace)
}

// CanPublishInPublicWorkspace reports whether the actor may publish into
// an existing public workspace.
func (s *AuthorizationService) CanPublishInPublicWorkspace(ctx context.Context, actor string) (bool, error) {
	return s.IsPrincipalAuthorized(ctx, actor, s.policy.GrantPublishInPublicWorkspace)
}

// CanReadPublication reports whether the actor may read the publication
// identified by (workspace, type, name). A missing publication yields
// false, not an error.
func (s *AuthorizationService) CanReadPublication(ctx context.Context, actor, workspace, ptype, name string) (bool, error) {
	info, err := s.publications.GetInfo(ctx, workspace, ptype, name)
	if err != nil {
		return false, err
	}
	if info == nil {
		return false, nil
	}
	return s.IsPrincipalAuthorized(ctx, actor, info.AccessRights.Read)
}

// CanWritePublication reports whether the actor may write the publication
// with the given UUID. A missing publication yields false, not an error.
func (s *AuthorizationService) CanWritePublication(ctx context.Context, actor, uuid string) (bool, error) {
	info, err := s.publications.GetInfoByUUID(ctx, uuid)
	if err != nil {
		return false, err
	}
	if info == nil {
		return false, nil
	}
	return s.IsPrincipalAuthorized(ctx, actor, info.AccessRights.Write)
}

// Authorize decides whether the request may proceed. It returns nil when
// authorized and one of the domain errors otherwise: workspace or
// publication not-found, access denied, unsupported method, or invalid
// workspace name. Read-denial on a single publication is deliberately
// reported as not-found so that private publications stay invisible;
// write-denial reveals a 403 only when the actor can already read.
func (s *AuthorizationService) Authorize(ctx context.Context, req AuthzRequest) error {
	exists, err := s.workspaces.Exists(ctx, req.Workspace)
	if err != nil {
		return err
	}

	if req.PublicationName == "" {
		return s.authorizeCollection(ctx, req, exists)
	}

	if !exists {
		return domain.ErrWorkspaceNotFound(req.Workspace)
	}
	return s.authorizePublication(ctx, req)
}

func (s *AuthorizationService) authorizeCollection(ctx context.Context, req AuthzRequest, workspaceExists bool) error {
	switch req.Method {
	case http.MethodGet, http.MethodDelete:
		// Listing and bulk delete only require the workspace; per-item
		// read filtering and per-item write checks happen in the handlers.
		if !workspaceExists {
			return domain.ErrWorkspaceNotFound(req.Workspace)
		}
		return nil

	case http.MethodPost:
		// Workspace absence is not fatal here: this request may be the
		// one creating it.
		return s.authorizePublish(ctx, req, workspaceExists)

	default:
		return domain.ErrUnsupportedMethod(req.Method)
	}
}

// authorizePublish gates creating a new publication in a workspace.
func (s *AuthorizationService) authorizePublish(ctx context.Context, req AuthzRequest, workspaceExists bool) error {
	// Publishing into one's own personal workspace is always allowed,
	// but a first publish still creates the workspace and so must pass
	// the same name rule as new public workspaces.
	if req.Actor != "" && req.Actor == req.Workspace {
		if !workspaceExists {
			return s.nameRule.Check(req.Workspace)
		}
		return nil
	}

	personal, err := s.workspaces.IsPersonal(ctx, req.Workspace)
	if err != nil {
		return err
	}
	if !personal {
		canPublish, err := s.CanPublishInPublicWorkspace(ctx, req.Actor)
		if err != nil {
			return err
		}
		if canPublish {
			if workspaceExists {
				return nil
			}
			// The workspace would be created by this request.
			canCreate, err := s.CanCreatePublicWorkspace(ctx, req.Actor)
			if err != nil {
				return err
			}
			if canCreate {
				return s.nameRule.Check(req.Workspace)
			}
		}
	}
	return domain.ErrUnauthorized("actor %q may not publish in workspace %q", req.Actor, req.Workspace)
}

func (s *AuthorizationService) authorizePublication(ctx context.Context, req AuthzRequest) error {
	info, err := s.publications.GetInfo(ctx, req.Workspace, req.PublicationType, req.PublicationName)
	if err != nil {
		return err
	}
	notFound := domain.ErrPublicationNotFound(req.PublicationType, req.Workspace, req.PublicationName)
	if info == nil {
		return notFound
	}

	canRead, err := s.IsPrincipalAuthorized(ctx, req.Actor, info.AccessRights.Read)
	if err != nil {
		return err
	}

	switch req.Method {
	case http.MethodGet:
		if canRead {
			return nil
		}
		return notFound

	case http.MethodPatch, http.MethodPut, http.MethodPost, http.MethodDelete:
		canWrite, err := s.IsPrincipalAuthorized(ctx, req.Actor, info.AccessRights.Write)
		if err != nil {
			return err
		}
		if canWrite {
			return nil
		}
		if canRead {
			return domain.ErrUnauthorized("actor %q may not modify %s %q in workspace %q",
				req.Actor, req.PublicationType, req.PublicationName, req.Workspace)
		}
		return notFound

	default:
		return domain.ErrUnsupportedMethod(req.Method)
	}
}

// FilterReadable keeps only the publications the actor may read,
// preserving input order. Pure with respect to items; the input slice is
// not modified.
func (s *AuthorizationService) FilterReadable(ctx context.Context, actor string, items []domain.Publication) ([]domain.Publication, error) {
	out := make([]domain.Publication, 0, len(items))
	for _, item := range items {
		ok, err := s.IsPrincipalAuthorized(ctx, actor, item.AccessRights.Read)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
