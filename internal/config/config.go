// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"layman-go/internal/domain"
)

// DefaultRoleNamePattern is the allow-list pattern a role name must match
// to be returned by role resolution.
const DefaultRoleNamePattern = `^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`

// DefaultWorkspaceNamePattern governs workspace and publication names.
const DefaultWorkspaceNamePattern = `^[a-z][a-z0-9]*(_[a-z0-9]+)*$`

// AuthConfig holds authentication and identity provider configuration.
type AuthConfig struct {
	// OIDC / JWKS configuration
	IssuerURL      string   // OIDC issuer URL
	JWKSURL        string   // Override JWKS URL (if no .well-known discovery)
	JWTSecret      string   // HS256 shared secret for local/dev JWT auth
	Audience       string   // Required JWT audience claim
	AllowedIssuers []string // Accepted issuers (defaults to [IssuerURL])

	// NameClaim is the JWT claim carrying the principal name (default "sub").
	NameClaim string
}

// OIDCEnabled returns true when an external identity provider is configured.
func (a *AuthConfig) OIDCEnabled() bool {
	return a.IssuerURL != "" || a.JWKSURL != ""
}

// AccessPolicy holds the access-control policy lists consumed by the
// authorization engine. Loaded from env vars, optionally overridden by a
// YAML policy file.
type AccessPolicy struct {
	// GrantCreatePublicWorkspace lists principals allowed to create a new
	// public workspace by publishing into it.
	GrantCreatePublicWorkspace []string `yaml:"grant_create_public_workspace"`
	// GrantPublishInPublicWorkspace lists principals allowed to publish
	// into an existing public workspace.
	GrantPublishInPublicWorkspace []string `yaml:"grant_publish_in_public_workspace"`
	// DefaultReadRights / DefaultWriteRights complete access rights when a
	// publish request supplies none.
	DefaultReadRights  []string `yaml:"default_read_rights"`
	DefaultWriteRights []string `yaml:"default_write_rights"`
	// RoleNamePattern is the allow-list regex for resolved role names.
	RoleNamePattern string `yaml:"role_name_pattern"`
	// ReservedWorkspaceNames are rejected when creating workspaces.
	ReservedWorkspaceNames []string `yaml:"reserved_workspace_names"`
}

// Validate checks the policy lists and compiles the role-name pattern.
func (p *AccessPolicy) Validate() error {
	if _, err := regexp.Compile(p.RoleNamePattern); err != nil {
		return fmt.Errorf("invalid ROLE_NAME_PATTERN: %w", err)
	}
	for _, grant := range [][]string{p.GrantCreatePublicWorkspace, p.GrantPublishInPublicWorkspace} {
		for _, name := range grant {
			if name == "" {
				return fmt.Errorf("empty principal name in grant list")
			}
		}
	}
	if len(p.DefaultReadRights) == 0 || len(p.DefaultWriteRights) == 0 {
		return fmt.Errorf("default access rights must not be empty")
	}
	return nil
}

// Config holds the configuration for the catalog HTTP API.
type Config struct {
	DBPath     string // path to the SQLite metadata file
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // debug|info|warn|error (default "info")

	RateLimitRPS       float64 // sustained requests/second per client (0 disables)
	RateLimitBurst     int
	CORSAllowedOrigins []string

	Auth   AuthConfig
	Policy AccessPolicy
}

// LoadFromEnv builds a Config from environment variables, applying
// defaults, then overlays the YAML policy file named by
// ACCESS_POLICY_FILE when set.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:     os.Getenv("LAYMAN_DB_PATH"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		Auth: AuthConfig{
			IssuerURL: os.Getenv("AUTH_ISSUER_URL"),
			JWKSURL:   os.Getenv("AUTH_JWKS_URL"),
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			Audience:  os.Getenv("AUTH_AUDIENCE"),
			NameClaim: os.Getenv("AUTH_NAME_CLAIM"),
		},
		Policy: AccessPolicy{
			GrantCreatePublicWorkspace:    splitList(os.Getenv("GRANT_CREATE_PUBLIC_WORKSPACE")),
			GrantPublishInPublicWorkspace: splitList(os.Getenv("GRANT_PUBLISH_IN_PUBLIC_WORKSPACE")),
			DefaultReadRights:             splitList(os.Getenv("DEFAULT_READ_RIGHTS")),
			DefaultWriteRights:            splitList(os.Getenv("DEFAULT_WRITE_RIGHTS")),
			RoleNamePattern:               os.Getenv("ROLE_NAME_PATTERN"),
			ReservedWorkspaceNames:        splitList(os.Getenv("RESERVED_WORKSPACE_NAMES")),
		},
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "layman_meta.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-in-production"
	}
	if cfg.Auth.NameClaim == "" {
		cfg.Auth.NameClaim = "sub"
	}
	if v := os.Getenv("AUTH_ALLOWED_ISSUERS"); v != "" {
		cfg.Auth.AllowedIssuers = splitList(v)
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimitBurst = burst
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	applyPolicyDefaults(&cfg.Policy)

	if path := os.Getenv("ACCESS_POLICY_FILE"); path != "" {
		if err := loadPolicyFile(path, &cfg.Policy); err != nil {
			return nil, err
		}
		applyPolicyDefaults(&cfg.Policy)
	}

	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyPolicyDefaults fills unset policy fields with the open defaults
// (everyone may publish, everyone may create public workspaces).
func applyPolicyDefaults(p *AccessPolicy) {
	if len(p.GrantCreatePublicWorkspace) == 0 {
		p.GrantCreatePublicWorkspace = []string{domain.EveryoneRole}
	}
	if len(p.GrantPublishInPublicWorkspace) == 0 {
		p.GrantPublishInPublicWorkspace = []string{domain.EveryoneRole}
	}
	if len(p.DefaultReadRights) == 0 {
		p.DefaultReadRights = []string{domain.EveryoneRole}
	}
	if len(p.DefaultWriteRights) == 0 {
		p.DefaultWriteRights = []string{domain.EveryoneRole}
	}
	if p.RoleNamePattern == "" {
		p.RoleNamePattern = DefaultRoleNamePattern
	}
}

// loadPolicyFile overlays policy fields from a YAML file. Fields absent
// from the file keep their current values.
func loadPolicyFile(path string, p *AccessPolicy) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file %s: %w", path, err)
	}
	var file AccessPolicy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if len(file.GrantCreatePublicWorkspace) > 0 {
		p.GrantCreatePublicWorkspace = file.GrantCreatePublicWorkspace
	}
	if len(file.GrantPublishInPublicWorkspace) > 0 {
		p.GrantPublishInPublicWorkspace = file.GrantPublishInPublicWorkspace
	}
	if len(file.DefaultReadRights) > 0 {
		p.DefaultReadRights = file.DefaultReadRights
	}
	if len(file.DefaultWriteRights) > 0 {
		p.DefaultWriteRights = file.DefaultWriteRights
	}
	if file.RoleNamePattern != "" {
		p.RoleNamePattern = file.RoleNamePattern
	}
	if len(file.ReservedWorkspaceNames) > 0 {
		p.ReservedWorkspaceNames = file.ReservedWorkspaceNames
	}
	return nil
}

// splitList splits a comma-separated env value, trimming whitespace and
// dropping empty entries.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
