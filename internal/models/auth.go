package models

import (
	"encoding/json"
	"net/http"
)

// Credential is the single email/password pair the service accepts.
type Credential struct {
	Email    string
	Password string
}

// Login is the body of a POST /login request.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UnmarshalJSON reads only the exact keys "email" and "password". The
// default decoder also accepts "EMAIL" or "Email", which the endpoint does
// not define. A null body or null field leaves the field empty.
func (l *Login) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*l = Login{}
	if raw, ok := fields["email"]; ok {
		if err := json.Unmarshal(raw, &l.Email); err != nil {
			return err
		}
	}
	if raw, ok := fields["password"]; ok {
		if err := json.Unmarshal(raw, &l.Password); err != nil {
			return err
		}
	}
	return nil
}

// LoginResponse is the body of every /login response.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Verdict is the outcome of checking a login attempt.
type Verdict int

const (
	// MissingFields: email or password absent or empty (400).
	MissingFields Verdict = iota
	// InvalidCredentials: the pair does not match the stored record (401).
	InvalidCredentials
	// Authenticated: exact match (200).
	Authenticated
)

// Messages sent in LoginResponse.Message.
const (
	MessageMissingFields      = "Email and password are required."
	MessageInvalidCredentials = "Invalid email or password."
	MessageAuthenticated      = "Login successful!"
	MessageInvalidBody        = "Invalid request body."
	MessageInternalError      = "Internal server error."
)

// String returns the label used in logs and metrics.
func (v Verdict) String() string {
	switch v {
	case MissingFields:
		return "missing_fields"
	case InvalidCredentials:
		return "invalid_credentials"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// StatusCode maps the verdict to its HTTP status.
func (v Verdict) StatusCode() int {
	switch v {
	case Authenticated:
		return http.StatusOK
	case InvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// Message returns the fixed response message for the verdict.
func (v Verdict) Message() string {
	switch v {
	case Authenticated:
		return MessageAuthenticated
	case InvalidCredentials:
		return MessageInvalidCredentials
	default:
		return MessageMissingFields
	}
}

// Response builds the JSON body sent for the verdict.
func (v Verdict) Response() LoginResponse {
	return LoginResponse{Success: v == Authenticated, Message: v.Message()}
}

// VerdictFromStatus is the inverse of StatusCode. ok is false for statuses
// the login endpoint never produces for a verdict.
func VerdictFromStatus(status int) (v Verdict, ok bool) {
	switch status {
	case http.StatusOK:
		return Authenticated, true
	case http.StatusUnauthorized:
		return InvalidCredentials, true
	case http.StatusBadRequest:
		return MissingFields, true
	default:
		return MissingFields, false
	}
}
