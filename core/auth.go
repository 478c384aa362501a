package core

import "fmt"

// SessionKey is the fixed storage key the session token lives under
const SessionKey = "tidbit_session_id"

// SessionHeader carries the session token on every authenticated request
const SessionHeader = "x-session-id"

// Page identifies a navigation target
type Page string

const (
	// PageIndex is the unauthenticated landing page
	PageIndex Page = "/index.html"

	// PageDashboard is the authenticated landing page
	PageDashboard Page = "/dashboard.html"
)

// Challenge represents a nonce challenge issued by the backend for one login attempt
type Challenge struct {
	SessionID string `json:"session_id"` // Becomes the session token once verified
	Nonce     string `json:"nonce"`      // One-time value embedded in the signed message
}

// Validate reports whether both challenge fields were supplied
func (c Challenge) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("%w: missing session_id", ErrMalformedChallenge)
	}
	if c.Nonce == "" {
		return fmt.Errorf("%w: missing nonce", ErrMalformedChallenge)
	}
	return nil
}

// VerifyRequest is the body sent to complete a login
type VerifyRequest struct {
	SessionID string `json:"session_id"`
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// VerifyResult is the subset of the verification response the client logs
type VerifyResult struct {
	OK     bool   `json:"ok"`
	Wallet string `json:"wallet"`
	Chain  string `json:"chain"`
}

// DocumentSummary is a read-only document record listed on the dashboard
type DocumentSummary struct {
	Label       string `json:"label,omitempty"`
	HashHex     string `json:"hash_hex"`
	LogicalID   string `json:"logical_id"`
	OwnerWallet string `json:"owner_wallet,omitempty"`
}

// LoginMessage builds the exact text the wallet signs and the backend verifies.
// The layout is compatibility-bearing: four lines, no trailing newline.
func LoginMessage(nonce string) string {
	return "TIDBIT Authentication\n" +
		"Nonce: " + nonce + "\n" +
		"Purpose: Login\n" +
		"Version: 1"
}
