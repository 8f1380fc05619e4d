package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials: the login exchange was rejected.
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	// ErrExpired: mid-session credential failure. Credentials are cleared
	// and the user must log in again.
	ErrExpired = errors.New("session: expired, login required")
	// ErrNoRefreshToken: a refresh was requested without a held refresh token.
	ErrNoRefreshToken = errors.New("session: no refresh token held")
	// ErrRefreshRejected: the refresh exchange was rejected; credential state
	// has been cleared.
	ErrRefreshRejected = errors.New("session: refresh rejected")
)

// RequestError reports a call that reached the server and was rejected with
// a non-auth status. Message carries the server-provided explanation when
// the error body had one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("session: request failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("session: request failed with status %d", e.Status)
}
