package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"layman-go/internal/domain"
)

// PublishParams describes a new publication. Rights may be nil or partial;
// missing rights are completed from the configured defaults.
type PublishParams struct {
	Name   string
	Title  string
	Rights *domain.AccessRightsUpdate
}

// PatchParams describes a partial update. Nil fields are left unchanged.
type PatchParams struct {
	Title  *string
	Rights *domain.AccessRightsUpdate
}

// PublicationService orchestrates catalog reads and writes. Authorization
// is decided before these methods run (by the authorize middleware); the
// only access check re-done here is the per-item write check of bulk
// delete.
type PublicationService struct {
	workspaces    domain.WorkspaceRepository
	publications  domain.PublicationRepository
	authz         *AuthorizationService
	defaultRights domain.AccessRights
	namePattern   *regexp.Regexp
	logger        *slog.Logger
}

// NewPublicationService creates a PublicationService. namePattern governs
// publication names.
func NewPublicationService(
	workspaces domain.WorkspaceRepository,
	publications domain.PublicationRepository,
	authz *AuthorizationService,
	defaultRights domain.AccessRights,
	namePattern string,
	logger *slog.Logger,
) (*PublicationService, error) {
	re, err := regexp.Compile(namePattern)
	if err != nil {
		return nil, fmt.Errorf("compile publication name pattern: %w", err)
	}
	return &PublicationService{
		workspaces:    workspaces,
		publications:  publications,
		authz:         authz,
		defaultRights: defaultRights,
		namePattern:   re,
		logger:        logger,
	}, nil
}

// List returns the publications of one type in a workspace that the actor
// may read, in catalog order.
func (s *PublicationService) List(ctx context.Context, actor, workspace, ptype string) ([]domain.Publication, error) {
	items, err := s.publications.List(ctx, workspace, ptype)
	if err != nil {
		return nil, err
	}
	return s.authz.FilterReadable(ctx, actor, items)
}

// ListAll returns every publication the actor may read, across all
// workspaces and types.
func (s *PublicationService) ListAll(ctx context.Context, actor string) ([]domain.Publication, error) {
	items, err := s.publications.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.authz.FilterReadable(ctx, actor, items)
}

// Get returns a single publication. The authorize middleware has already
// established read access; a vanished publication still maps to the
// type-specific not-found error.
func (s *PublicationService) Get(ctx context.Context, workspace, ptype, name string) (*domain.Publication, error) {
	info, err := s.publications.GetInfo(ctx, workspace, ptype, name)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, domain.ErrPublicationNotFound(ptype, workspace, name)
	}
	return info, nil
}

// Publish creates a new publication, creating the workspace row on first
// publish and completing partial access rights from the defaults.
func (s *PublicationService) Publish(ctx context.Context, workspace, ptype string, params PublishParams) (*domain.Publication, error) {
	if !domain.KnownType(ptype) {
		return nil, domain.ErrValidation(domain.CodeInvalidParameter,
			"unknown publication type %q", ptype)
	}
	if !s.namePattern.MatchString(params.Name) {
		return nil, domain.ErrValidation(domain.CodeInvalidParameter,
			"publication name %q is not valid", params.Name)
	}

	if err := s.workspaces.EnsureWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	pub := &domain.Publication{
		UUID:         uuid.NewString(),
		Workspace:    workspace,
		Type:         ptype,
		Name:         params.Name,
		Title:        params.Title,
		AccessRights: CompleteAccessRights(params.Rights, s.defaultRights),
	}
	if err := s.publications.Create(ctx, pub); err != nil {
		return nil, err
	}

	s.logger.Info("publication created",
		"workspace", workspace, "type", ptype, "name", params.Name, "uuid", pub.UUID)
	return s.Get(ctx, workspace, ptype, params.Name)
}

// Patch updates title and/or access rights of an existing publication.
// Partial rights are completed against the publication's current record.
func (s *PublicationService) Patch(ctx context.Context, workspace, ptype, name string, params PatchParams) (*domain.Publication, error) {
	info, err := s.Get(ctx, workspace, ptype, name)
	if err != nil {
		return nil, err
	}

	if params.Rights != nil {
		rights := CompleteAccessRights(params.Rights, info.AccessRights)
		if err := s.publications.UpdateAccessRights(ctx, info.UUID, rights); err != nil {
			return nil, err
		}
	}
	if params.Title != nil {
		if err := s.publications.UpdateTitle(ctx, info.UUID, *params.Title); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, workspace, ptype, name)
}

// Delete removes a single publication and returns its last state.
func (s *PublicationService) Delete(ctx context.Context, workspace, ptype, name string) (*domain.Publication, error) {
	info, err := s.Get(ctx, workspace, ptype, name)
	if err != nil {
		return nil, err
	}
	if err := s.publications.Delete(ctx, info.UUID); err != nil {
		return nil, err
	}
	s.logger.Info("publication deleted",
		"workspace", workspace, "type", ptype, "name", name, "uuid", info.UUID)
	return info, nil
}

// BulkDelete removes every publication of one type in a workspace that the
// actor may write, and returns the deleted items. Items the actor cannot
// write are silently kept: collection-level authorization only required
// the workspace to exist, so write access is re-verified here per item,
// by UUID.
func (s *PublicationService) BulkDelete(ctx context.Context, actor, workspace, ptype string) ([]domain.Publication, error) {
	items, err := s.publications.List(ctx, workspace, ptype)
	if err != nil {
		return nil, err
	}

	deleted := make([]domain.Publication, 0, len(items))
	for _, item := range items {
		canWrite, err := s.authz.CanWritePublication(ctx, actor, item.UUID)
		if err != nil {
			return nil, err
		}
		if !canWrite {
			continue
		}
		if err := s.publications.Delete(ctx, item.UUID); err != nil {
			return nil, err
		}
		deleted = append(deleted, item)
	}

	if len(deleted) > 0 {
		s.logger.Info("bulk delete",
			"workspace", workspace, "type", ptype, "actor", actor, "deleted", len(deleted))
	}
	return deleted, nil
}
