package health

import "context"

// BackendPinger checks search backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks the shared cache tier availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
