package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
	transport "github.com/layer-3/tidbit/transport/http"
)

// Status texts shown during login
const (
	StatusRequestingNonce = "Requesting nonce…"
	StatusSigning         = "Signing message…"
	StatusVerifying       = "Verifying…"
	StatusAuthenticated   = "Authenticated"
	StatusLoginFailed     = "Login failed"
	StatusNoWallet        = "Wallet provider not found"
)

// AuthService runs the wallet login and logout flows
type AuthService struct {
	backend  ports.Backend
	wallet   ports.Wallet
	store    ports.SessionStore
	nav      ports.Navigator
	status   ports.StatusReporter
	eventPub ports.EventPublisher
	logger   zerolog.Logger
}

// NewAuthService creates the auth flow controller. A nil wallet means no
// wallet provider is available; a nil eventPub disables events.
func NewAuthService(
	backend ports.Backend,
	wallet ports.Wallet,
	store ports.SessionStore,
	nav ports.Navigator,
	status ports.StatusReporter,
	eventPub ports.EventPublisher,
	logger zerolog.Logger,
) *AuthService {
	if eventPub == nil {
		eventPub = nopEvents{}
	}
	return &AuthService{
		backend:  backend,
		wallet:   wallet,
		store:    store,
		nav:      nav,
		status:   status,
		eventPub: eventPub,
		logger:   logger,
	}
}

// Login authenticates with the wallet. Failures are reported through the
// status line; the returned error is only informational. The session is
// persisted, and the dashboard opened, only after verification succeeds.
func (s *AuthService) Login(ctx context.Context) error {
	if s.wallet == nil {
		s.status.SetStatus(StatusNoWallet)
		s.logger.Error().Msg("no wallet provider available")
		return core.ErrWalletUnavailable
	}

	if err := s.login(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Msg("login failed")
		s.status.SetStatus(StatusLoginFailed)
		return err
	}
	return nil
}

func (s *AuthService) login(ctx context.Context) error {
	s.status.SetStatus(StatusRequestingNonce)

	challenge, err := s.backend.RequestNonce(ctx)
	if err != nil {
		if errors.Is(err, core.ErrMalformedChallenge) {
			return err
		}
		return fmt.Errorf("%w: %w", core.ErrNonceRequestFailed, err)
	}

	s.logger.Debug().
		Str("session_id", challenge.SessionID).
		Str("nonce", challenge.Nonce).
		Msg("got nonce")

	accounts, err := s.wallet.RequestAccounts(ctx)
	if err != nil {
		return fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return core.ErrNoAccounts
	}
	// the backend validates the address when it recovers the signer
	address := accounts[0]

	s.logger.Info().
		Str("address", address).
		Msg("wallet connected")

	message := core.LoginMessage(challenge.Nonce)

	s.status.SetStatus(StatusSigning)
	signature, err := s.wallet.PersonalSign(ctx, message, address)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	s.status.SetStatus(StatusVerifying)
	body, err := s.backend.Verify(ctx, core.VerifyRequest{
		SessionID: challenge.SessionID,
		Address:   address,
		Signature: signature,
	})
	if err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Error().
				Int("status", statusErr.Code).
				Str("body", statusErr.Body).
				Msg("verify rejected")
		}
		return fmt.Errorf("%w: %w", core.ErrVerificationFailed, err)
	}

	if err := s.logVerifyResult(body); err != nil {
		return err
	}

	if err := s.store.Save(ctx, challenge.SessionID); err != nil {
		return err
	}

	s.status.SetStatus(StatusAuthenticated)

	if err := s.eventPub.PublishLogin(ctx, address); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to publish login event")
	}

	s.nav.Navigate(core.PageDashboard)
	return nil
}

func (s *AuthService) logVerifyResult(body []byte) error {
	if len(body) == 0 {
		s.logger.Info().Msg("verify ok")
		return nil
	}
	if !json.Valid(body) {
		return fmt.Errorf("%w: verify response is not json", core.ErrMalformedResponse)
	}

	var result core.VerifyResult
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Debug().
			Err(err).
			Msg("verify response is not an object")
	}
	s.logger.Info().
		Str("wallet", result.Wallet).
		Str("chain", result.Chain).
		Msg("verify ok")
	return nil
}

// Logout drops the session locally whatever the backend answers and returns
// to the index page. Without a session it does nothing.
func (s *AuthService) Logout(ctx context.Context) error {
	sid, ok := s.store.Read(ctx)
	if !ok {
		return nil
	}

	if err := s.backend.Logout(ctx, sid); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("logout request failed")
	}

	clearErr := s.store.Clear(ctx)
	if clearErr != nil {
		s.logger.Error().
			Err(clearErr).
			Msg("failed to clear session")
	}

	if err := s.eventPub.PublishLogout(ctx); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to publish logout event")
	}

	s.nav.Navigate(core.PageIndex)
	return clearErr
}

type nopEvents struct{}

func (nopEvents) PublishLogin(context.Context, string) error { return nil }
func (nopEvents) PublishLogout(context.Context) error { return nil }
func (nopEvents) PublishSessionExpired(context.Context, string) error { return nil }
