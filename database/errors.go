package database

import "errors"

var (
	// ErrNotFound record not found
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists create attempted for a key that is already present
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUnsupportedDBType unsupported database type
	ErrUnsupportedDBType = errors.New("unsupported database type")

	// ErrDatabaseNotInitialized database is not initialized
	ErrDatabaseNotInitialized = errors.New("database not initialized")
)
