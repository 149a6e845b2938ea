package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccessDenied        = errors.New("access denied: administrator or developer role required")
	ErrAdminAccessRequired = errors.New("administrator access required")
)
