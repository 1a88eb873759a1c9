package services

import "errors"

// Sentinel errors of the auth and event flows. Handlers map these to HTTP
// status codes; the messages themselves are user-facing.
var (
	// Deliberately identical for wrong username and wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("email, username and password are required")
	ErrPendingApproval    = errors.New("your account is pending admin approval")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrStorePermission    = errors.New("database permission denied")

	ErrEventNotFound = errors.New("event not found")
	ErrEventLimit    = errors.New("maximum number of events reached")
	ErrEmptyTitle    = errors.New("event title cannot be empty")
	ErrNotAdmin      = errors.New("you must be an approved admin to create events")
	ErrWrongPassword = errors.New("incorrect password")
)
