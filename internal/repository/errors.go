package repository

import "errors"

// ErrNotFound indicates an entity was not located. Owned lookups return it
// both for missing ids and ids owned by someone else; callers must not be
// able to tell the two apart.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a unique constraint was violated (duplicate email).
var ErrConflict = errors.New("repository: duplicate value")
