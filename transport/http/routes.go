package http

// Backend endpoints consumed by the client
const (
	PathNonce     = "/auth/evm/nonce"
	PathVerify    = "/auth/evm/verify"
	PathLogout    = "/auth/logout"
	PathSession   = "/auth/session"
	PathDocuments = "/api/doc/list"
)
