package fedsearch

import "github.com/kailas-cloud/fedsearch/internal/domain"

// Sentinel errors returned by the client. Match with errors.Is.
var (
	// ErrNoCollections means the request named no collections.
	ErrNoCollections = domain.ErrNoCollections
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = domain.ErrInvalidRequest
	// ErrCollectionNotFound means the backend has no such collection.
	ErrCollectionNotFound = domain.ErrCollectionNotFound
	// ErrUnauthorized means the backend rejected the API key.
	ErrUnauthorized = domain.ErrUnauthorized
	// ErrBackendUnavailable means the backend could not be reached or
	// failed server-side.
	ErrBackendUnavailable = domain.ErrBackendUnavailable
)
