package model

import "errors"

var (
	// ErrNotFound is returned by stores when no entity matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores when a unique attribute is already taken.
	ErrConflict = errors.New("already exists")
)
