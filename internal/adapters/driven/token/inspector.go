// Package token reads claims from bearer tokens issued by the marketplace.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.TokenInspector = (*Inspector)(nil)

// ErrOpaque is returned for tokens that are not JWTs.
var ErrOpaque = errors.New("token: not a JWT")

// Inspector parses JWTs without verifying their signature. The client never
// holds the signing key, so the claims are advisory.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates an Inspector.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Inspect returns the subject and validity window of tok.
func (i *Inspector) Inspect(tok string) (domain.TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(tok, claims); err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: %v", ErrOpaque, err)
	}

	var info domain.TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("token: exp claim: %w", err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
