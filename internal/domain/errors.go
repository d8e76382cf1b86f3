package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates the operation needs a signed-in user.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates the signed-in user lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
