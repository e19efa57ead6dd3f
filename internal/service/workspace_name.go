package service

import (
	"fmt"
	"regexp"

	mapset "github.com/deckarep/golang-set/v2"

	"layman-go/internal/domain"
)

// WorkspaceNameRule validates names proposed for newly created workspaces:
// an anchored lowercase pattern plus a reserved-name deny list.
type WorkspaceNameRule struct {
	pattern  *regexp.Regexp
	reserved mapset.Set[string]
}

// NewWorkspaceNameRule compiles the rule. reserved may be nil.
func NewWorkspaceNameRule(pattern string, reserved []string) (*WorkspaceNameRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile workspace name pattern: %w", err)
	}
	return &WorkspaceNameRule{
		pattern:  re,
		reserved: mapset.NewThreadUnsafeSet(reserved...),
	}, nil
}

// Check returns nil for a valid workspace name and a ValidationError
// otherwise.
func (r *WorkspaceNameRule) Check(name string) error {
	if !r.pattern.MatchString(name) {
		return domain.ErrValidation(domain.CodeInvalidWorkspaceName,
			"workspace name %q is not valid", name)
	}
	if r.reserved.Contains(name) {
		return domain.ErrValidation(domain.CodeInvalidWorkspaceName,
			"workspace name %q is reserved", name)
	}
	return nil
}
