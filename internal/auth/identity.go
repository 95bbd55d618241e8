package auth

import "errors"

// Roles assignable to users. New accounts start as BASIC.
const (
	RoleBasic = "BASIC"
	RoleAdmin = "ADMIN"
)

var (
	// ErrUnauthenticated is returned when an operation requires a valid
	// session and the caller has none.
	ErrUnauthenticated = errors.New("you are not authenticated")

	// ErrForbidden is returned when the caller's role does not grant the
	// operation.
	ErrForbidden = errors.New("not allowed")
)

// Identity describes the caller of an operation. It is derived once per
// request from the session token and passed explicitly into every
// service call; nothing downstream re-reads the request.
type Identity struct {
	Authenticated bool
	UserID        string
	Email         string
	Role          string
}

// RequireAuthenticated fails with ErrUnauthenticated when the identity
// has no valid session. Called before any side effect.
func RequireAuthenticated(id Identity) error {
	if !id.Authenticated {
		return ErrUnauthenticated
	}
	return nil
}

// RequireRole fails with ErrForbidden when the identity does not hold
// the expected role. Callers check authentication first.
func RequireRole(id Identity, expected string) error {
	if id.Role != expected {
		return ErrForbidden
	}
	return nil
}
