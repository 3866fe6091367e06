package client

// The server reports failures as {"error": "..."}. Each error type below
// keeps that message so callers can show it directly.

// AuthError means the credentials were rejected or the session is no longer
// valid.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ValidationError means the server (or a pre-flight check in this package)
// rejected the submitted input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means the referenced record does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// OpError means a delete or update failed for a server-side reason.
type OpError struct {
	Message string
}

func (e *OpError) Error() string { return e.Message }
