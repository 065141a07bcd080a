package jwt

import "errors"

var ErrMissingSecret = errors.New("jwt secret is not configured")
var ErrWhileCreatingToken = errors.New("error while creating token")
var ErrUnexpectedSignMethod = errors.New("unexpected signing method")
