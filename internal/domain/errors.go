package domain

import "errors"

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when an entity is added with an identifier
// already present in its collection.
var ErrDuplicateID = errors.New("duplicate identifier")

// ErrValidation is returned when a required field is missing.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when an operation needs an admin session.
var ErrUnauthenticated = errors.New("not authenticated")
