package domain

import (
	"context"
	"time"
)

// Role is the caller's privilege level as asserted by the auth provider.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsOrganizer reports whether the principal may mutate the agenda.
func (p Principal) IsOrganizer() bool {
	return p.Role == RoleOrganizer
}

// RoleFromClaims picks the strongest known role out of a token's role list.
func RoleFromClaims(roles []string) Role {
	role := RoleAttendee
	for _, r := range roles {
		if Role(r) == RoleOrganizer {
			return RoleOrganizer
		}
	}
	return role
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
