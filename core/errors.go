package core

import "errors"

var (
	ErrWalletUnavailable  = errors.New("wallet provider not found")
	ErrNonceRequestFailed = errors.New("nonce request failed")
	ErrMalformedChallenge = errors.New("malformed nonce challenge")
	ErrNoAccounts         = errors.New("wallet returned no accounts")
	ErrInvalidAddress     = errors.New("invalid ethereum address")
	ErrUserRejected       = errors.New("request rejected by user")
	ErrVerificationFailed = errors.New("verification failed")
	ErrMalformedResponse  = errors.New("malformed response body")
	ErrNoSession          = errors.New("no session")
	ErrUnauthorized       = errors.New("session expired")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrStoreOperation     = errors.New("store operation failed")
)
