package services

import (
	"crypto/subtle"

	"flixauth/internal/models"
)

// AuthService checks login attempts against the configured credential.
type AuthService interface {
	Verify(email, password string) models.Verdict
}

type authService struct {
	credential models.Credential
}

// NewAuthService returns a verifier bound to a copy of credential. The copy
// is never modified, so the service can be shared across goroutines.
func NewAuthService(credential models.Credential) AuthService {
	return &authService{credential: credential}
}

// Verify has no side effects: no logging, no metrics, no state.
// Unknown email and wrong password produce the same verdict.
func (a *authService) Verify(email, password string) models.Verdict {
	if email == "" || password == "" {
		return models.MissingFields
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.credential.Email))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.credential.Password))
	if emailOK&passwordOK == 1 {
		return models.Authenticated
	}
	return models.InvalidCredentials
}
