// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings. ErrNoteNotFound deliberately covers
// both a nonexistent note id and a note owned by someone else: callers
// must not be able to tell the two apart, otherwise probing ids would
// reveal which notes exist.
package repository

import "errors"

// ErrUsernameExists is returned when a registration collides with an
// existing username. The uniqueness check rides on the database's
// unique key, so two concurrent registrations cannot both succeed.
// Handlers should translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrNoteNotFound is returned when a note lookup, update or delete
// matches no row for the given (id, owner) pair. Handlers should
// translate this into an HTTP 404 response.
var ErrNoteNotFound = errors.New("note not found")
