package acdc

import (
	"errors"
	"net/http"
)

var (
	// ErrNoIssuer is returned by New when it isn't given an Issuer.
	ErrNoIssuer = errors.New("acdc exchange requires an issue callback")

	// ErrBodyNotParsed is returned by Exchange when the request body
	// wasn't parsed before the Exchange ran. It means the server is
	// misconfigured, not that the client did anything wrong.
	ErrBodyNotParsed = errors.New("acdc exchange requires body parsing; did you forget to wrap the handler with ParseBody?")

	// ErrEmptyAccessToken is returned by Exchange when an Issuer reports
	// a token was issued but doesn't supply one.
	ErrEmptyAccessToken = errors.New("issuer returned an empty access token")
)

// OAuth2 error codes used by the Exchange.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidGrant   = "invalid_grant"
	CodeServerError    = "server_error"
)

// TokenError is an error that should be shown to the client as an OAuth2
// token endpoint error response.
type TokenError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	URI         string `json:"error_uri,omitempty"`
	Status      int    `json:"-"`
}

func (t *TokenError) Error() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Code
}

// NewTokenError returns a TokenError with the passed OAuth2 error code,
// description, and HTTP status. A zero status becomes 400.
func NewTokenError(code, description string, status int) *TokenError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &TokenError{
		Code:        code,
		Description: description,
		Status:      status,
	}
}

func missingParameterError(name string) *TokenError {
	return NewTokenError(CodeInvalidRequest, "Missing required parameter: "+name, http.StatusBadRequest)
}

func invalidACDCError() *TokenError {
	return NewTokenError(CodeInvalidGrant, "Invalid authorization cross domain code", http.StatusForbidden)
}

var serverError = TokenError{Code: CodeServerError, Status: http.StatusInternalServerError}
