package auth

import (
	"context"
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
)

const adminClaim = "admin"

var errNotAdmin = errors.New("token lacks admin claim")

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Authenticate verifies the bearer ID token of req and requires the admin
// custom claim.
func Authenticate(req *http.Request, verifier TokenVerifier) (*auth.Token, error) {
	jwtToken, err := bearerTokenFromRequest(req)
	if err != nil {
		return nil, err
	}
	token, err := verifier.VerifyIDToken(req.Context(), jwtToken)
	if err != nil {
		return nil, err
	}
	if isAdmin, _ := token.Claims[adminClaim].(bool); !isAdmin {
		return nil, errNotAdmin
	}
	return token, nil
}
