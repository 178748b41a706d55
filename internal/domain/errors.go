package domain

import "errors"

var (
	// ErrNoCollections signals a federated request without any collection.
	ErrNoCollections = errors.New("no collections configured")
	// ErrInvalidRequest signals a malformed federated search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCollectionNotFound signals a collection unknown to the backend.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrUnauthorized signals a rejected backend API key.
	ErrUnauthorized = errors.New("backend rejected api key")
	// ErrBackendUnavailable signals a backend-side failure.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)
