package auth

import (
	"errors"
	"net/http"
	"strings"
)

var (
	errMissingAuthorizationHeader = errors.New("missing Authorization header")
	errInvalidAuthorizationHeader = errors.New("invalid Authorization header")
)

// bearerTokenFromRequest returns the ID token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerTokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthorizationHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errInvalidAuthorizationHeader
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", errInvalidAuthorizationHeader
	}
	return token, nil
}
