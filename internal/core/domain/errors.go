package domain

import "errors"

// Sentinel errors returned by services and repositories. Callers match with
// errors.Is; the API error handler maps each to its HTTP status code.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotOwner           = errors.New("you can only modify your own account")
	ErrRoleChangeNotAdmin = errors.New("only administrators can change user roles")
)
