// Package tidbit is a wallet-authenticated client for the tidbit document API.
package tidbit

import (
	"context"

	"github.com/layer-3/tidbit/ports"
)

// Client represents the public interface for interacting with the tidbit backend
type Client interface {
	// Login signs in with the wallet and opens the dashboard on success
	Login(ctx context.Context) error

	// Logout drops the current session
	Logout(ctx context.Context) error

	// LoadSessionInfo renders the current session into area
	LoadSessionInfo(ctx context.Context, area ports.Display) error

	// LoadDocuments renders the document list into area
	LoadDocuments(ctx context.Context, area ports.Display) error
}
