package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layman-go/internal/config"
	"layman-go/internal/domain"
)

func TestWorkspaceNameRule(t *testing.T) {
	rule, err := NewWorkspaceNameRule(config.DefaultWorkspaceNamePattern, []string{"rest", "current"})
	require.NoError(t, err)

	for _, name := range []string{"alice", "pub_ws", "a1", "long_name_2"} {
		assert.NoError(t, rule.Check(name), "name %q", name)
	}

	for _, name := range []string{"", "Alice", "1abc", "_x", "a__b", "a-b", "rest", "current"} {
		err := rule.Check(name)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation, "name %q", name)
		assert.Equal(t, domain.CodeInvalidWorkspaceName, validation.Code, "name %q", name)
	}
}

func TestNewWorkspaceNameRuleBadPattern(t *testing.T) {
	_, err := NewWorkspaceNameRule("([", nil)
	require.Error(t, err)
}
