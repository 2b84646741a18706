package storage

import "errors"

// Common client storage errors
var (
	// ErrKeyNotFound indicates that fallback entry does not exist
	ErrKeyNotFound = errors.New("fallback entry not found")

	// ErrTokenNotFound indicates that neither cookie nor fallback holds the token
	ErrTokenNotFound = errors.New("token not found")

	// ErrUserNotFound indicates that no user snapshot is stored
	ErrUserNotFound = errors.New("user snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
