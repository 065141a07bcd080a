package refresh

import "errors"

// ErrNotFound covers unknown, revoked and expired secrets alike.
var ErrNotFound = errors.New("refresh token not found")

// ErrAlreadyRotated is returned when a concurrent refresh replaced the token first.
var ErrAlreadyRotated = errors.New("refresh token already rotated")
