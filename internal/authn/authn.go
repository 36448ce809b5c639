// Package authn turns a session token into an explicit caller context.
package authn

import (
	"errors"
	"strings"

	"github.com/fleetgrid/ownerconsole/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
)

const RoleOwner = "owner"

var (
	ErrMissingToken = errors.New("missing_token")
	ErrInvalidToken = errors.New("invalid_token")
)

// Context identifies the authenticated caller for one request.
type Context struct {
	CallerID string
	Email    string
	Role     string
}

func (c Context) IsOwner() bool {
	return c.Role == RoleOwner
}

type sessionClaims struct {
	Email        string `json:"email"`
	PlatformRole string `json:"platform_role"`
	jwt.RegisteredClaims
}

// Verifier validates session tokens issued by the identity provider.
type Verifier struct {
	secret []byte
}

func NewVerifier(cfg config.Config) *Verifier {
	return &Verifier{secret: []byte(cfg.AuthJWTSecret)}
}

// Module provides the token verifier via Fx.
var Module = fx.Module("authn", fx.Provide(NewVerifier))

// Parse validates the raw token and returns the caller context.
func (v *Verifier) Parse(raw string) (Context, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Context{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return Context{}, ErrInvalidToken
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Context{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Context{}, ErrInvalidToken
	}

	return Context{
		CallerID: claims.Subject,
		Email:    claims.Email,
		Role:     claims.PlatformRole,
	}, nil
}
