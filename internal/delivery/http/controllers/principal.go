package controllers

import (
	"net/http"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// requirePrincipal returns the caller set by the auth middleware, writing a 401 when absent.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok || p.UserID == "" {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Principal{}, false
	}
	return p, true
}

// pathParam reads a required path value, writing a 400 when it is empty.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	return v, true
}
