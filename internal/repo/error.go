package repo

import "errors"

var ErrNotFound = errors.New("not found")
var ErrAlreadyExists = errors.New("already exists")

// ErrConflict is returned when a row changed state under a concurrent writer.
var ErrConflict = errors.New("conflict")
