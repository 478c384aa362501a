package ports

import "context"

// Wallet is the injected wallet provider capability
type Wallet interface {
	// RequestAccounts asks the wallet for its account addresses; it may prompt the user
	RequestAccounts(ctx context.Context) ([]string, error)

	// PersonalSign signs message text with address and returns the hex signature
	PersonalSign(ctx context.Context, message, address string) (string, error)
}
