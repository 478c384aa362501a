package ports

import "context"

// SessionStore holds the single session token the client owns
type SessionStore interface {
	// Save persists the token, overwriting any previous one
	Save(ctx context.Context, token string) error

	// Read returns the persisted token; ok is false when none is stored.
	// Read never fails: backend errors surface as an absent token.
	Read(ctx context.Context) (token string, ok bool)

	// Clear removes the token; clearing an empty store is not an error
	Clear(ctx context.Context) error
}
