// Package middleware provides HTTP middleware: authentication, request
// authorization, request IDs, and rate limiting.
package middleware

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims holds the parsed claims from a validated JWT.
type JWTClaims struct {
	Subject string
	Issuer  string
	Raw     map[string]interface{}
}

// Name returns the principal name from the given claim, falling back to
// the token subject.
func (c *JWTClaims) Name(claim string) string {
	if v, ok := c.Raw[claim].(string); ok && v != "" {
		return v
	}
	return c.Subject
}

// JWTValidator validates a JWT token and returns the parsed claims.
type JWTValidator interface {
	Validate(ctx context.Context, tokenString string) (*JWTClaims, error)
}

// OIDCValidator validates JWTs using OIDC discovery and JWKS.
type OIDCValidator struct {
	verifier       *oidc.IDTokenVerifier
	allowedIssuers map[string]bool
}

// NewOIDCValidator creates a validator from an OIDC issuer URL.
func NewOIDCValidator(ctx context.Context, issuerURL, audience string, allowedIssuers []string) (*OIDCValidator, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: audience})
	return &OIDCValidator{verifier: verifier, allowedIssuers: issuerSet(allowedIssuers, issuerURL)}, nil
}

// NewOIDCValidatorFromJWKS creates a validator from a JWKS URL (no OIDC
// discovery).
func NewOIDCValidatorFromJWKS(ctx context.Context, jwksURL, issuerURL, audience string, allowedIssuers []string) (*OIDCValidator, error) {
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	verifier := oidc.NewVerifier(issuerURL, keySet, &oidc.Config{ClientID: audience})
	return &OIDCValidator{verifier: verifier, allowedIssuers: issuerSet(allowedIssuers, issuerURL)}, nil
}

// Validate verifies the token signature and issuer, and parses claims.
func (v *OIDCValidator) Validate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	idToken, err := v.verifier.Verify(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if len(v.allowedIssuers) > 0 && !v.allowedIssuers[idToken.Issuer] {
		return nil, fmt.Errorf("issuer %q not allowed", idToken.Issuer)
	}

	raw := map[string]interface{}{}
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	return &JWTClaims{Subject: idToken.Subject, Issuer: idToken.Issuer, Raw: raw}, nil
}

// HS256Validator validates JWTs signed with a shared HS256 secret.
// Intended for local development and tests.
type HS256Validator struct {
	secret []byte
}

// NewHS256Validator creates a validator for the shared secret.
func NewHS256Validator(secret []byte) *HS256Validator {
	return &HS256Validator{secret: secret}
}

// Validate parses and verifies an HS256-signed token.
func (v *HS256Validator) Validate(_ context.Context, tokenString string) (*JWTClaims, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	out := &JWTClaims{Raw: map[string]interface{}(claims)}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if iss, ok := claims["iss"].(string); ok {
		out.Issuer = iss
	}
	if out.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return out, nil
}

func issuerSet(allowed []string, issuerURL string) map[string]bool {
	issuers := make(map[string]bool, len(allowed))
	for _, iss := range allowed {
		issuers[iss] = true
	}
	if len(issuers) == 0 && issuerURL != "" {
		issuers[issuerURL] = true
	}
	return issuers
}
