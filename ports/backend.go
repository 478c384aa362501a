package ports

import (
	"context"

	"github.com/layer-3/tidbit/core"
)

// Backend is the remote authentication API
type Backend interface {
	RequestNonce(ctx context.Context) (core.Challenge, error)

	// Verify returns the raw response body, which may be empty
	Verify(ctx context.Context, req core.VerifyRequest) ([]byte, error)

	Logout(ctx context.Context, sessionID string) error

	// Get issues an authenticated read and returns the raw body of a successful response
	Get(ctx context.Context, path, sessionID string) ([]byte, error)
}
