package backend

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("backend: record not found")

	// ErrUnauthorized indicates the backend rejected the credential.
	ErrUnauthorized = errors.New("backend: unauthorized")

	// ErrNoCredential indicates there is neither a caller token nor
	// service credentials to mint one from.
	ErrNoCredential = errors.New("backend: no credential available")
)
