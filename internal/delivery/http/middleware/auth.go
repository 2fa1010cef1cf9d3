package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// tokenQueryParam carries the token for websocket upgrades, where browsers
// cannot set an Authorization header.
const tokenQueryParam = "access_token"

// bearerToken extracts the token from the Authorization header, falling back
// to the access_token query parameter on websocket upgrades. The message is set
// when the request carries no usable token.
func bearerToken(r *http.Request) (token, message string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			if t := r.URL.Query().Get(tokenQueryParam); t != "" {
				return t, ""
			}
		}
		return "", "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", "invalid authorization format"
	}
	token = strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", "missing token"
	}
	return token, ""
}

// RequireAuth returns a wrapper that validates the Bearer token and stores the principal in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, msg := bearerToken(r)
			if msg != "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, msg)
				return
			}
			principal, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(domain.WithPrincipal(r.Context(), principal))
			next(w, r)
		}
	}
}
