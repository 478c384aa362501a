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
	"github.com/layer-3/tidbit/view"
)

// StatusDocumentsFailed is shown when the document list cannot be loaded
const StatusDocumentsFailed = "Failed to load documents"

// DashboardService loads the authenticated dashboard data
type DashboardService struct {
	backend  ports.Backend
	store    ports.SessionStore
	nav      ports.Navigator
	status   ports.StatusReporter
	eventPub ports.EventPublisher
	logger   zerolog.Logger
}

// NewDashboardService creates the dashboard loaders
func NewDashboardService(
	backend ports.Backend,
	store ports.SessionStore,
	nav ports.Navigator,
	status ports.StatusReporter,
	eventPub ports.EventPublisher,
	logger zerolog.Logger,
) *DashboardService {
	if eventPub == nil {
		eventPub = nopEvents{}
	}
	return &DashboardService{
		backend:  backend,
		store:    store,
		nav:      nav,
		status:   status,
		eventPub: eventPub,
		logger:   logger,
	}
}

// AuthenticatedGet reads path with the stored session and decodes the body into out.
//
// Without a session it redirects to the index page and returns core.ErrNoSession
// without touching the network. A 401 clears the session, redirects, and returns
// core.ErrUnauthorized. Any other failure status is returned as a
// *transport.StatusError and leaves the session alone.
func (s *DashboardService) AuthenticatedGet(ctx context.Context, path string, out any) error {
	sid, ok := s.store.Read(ctx)
	if !ok {
		s.nav.Navigate(core.PageIndex)
		return core.ErrNoSession
	}

	body, err := s.backend.Get(ctx, path, sid)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			s.expire(ctx, path)
			return core.ErrUnauthorized
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMalformedResponse, err)
	}
	return nil
}

// LoadSessionInfo renders the session document into area. Any failure
// response is treated as an invalid session.
func (s *DashboardService) LoadSessionInfo(ctx context.Context, area ports.Display) error {
	sid, ok := s.store.Read(ctx)
	if !ok {
		s.nav.Navigate(core.PageIndex)
		return core.ErrNoSession
	}

	body, err := s.backend.Get(ctx, transport.PathSession, sid)
	if err != nil {
		var statusErr *transport.StatusError
		if !errors.As(err, &statusErr) {
			// transport failure, the session may still be fine
			s.logger.Error().
				Err(err).
				Msg("failed to load session info")
			return err
		}
		s.expire(ctx, transport.PathSession)
		return err
	}

	area.Replace(view.SessionInfo(body))
	return nil
}

// LoadDocuments renders the document list into area, replacing what was there.
// Nothing is rendered when the list cannot be read.
func (s *DashboardService) LoadDocuments(ctx context.Context, area ports.Display) error {
	var docs *[]core.DocumentSummary

	err := s.AuthenticatedGet(ctx, transport.PathDocuments, &docs)
	switch {
	case errors.Is(err, core.ErrNoSession), errors.Is(err, core.ErrUnauthorized):
		return nil
	case err != nil:
		s.logger.Error().
			Err(err).
			Msg("failed to load documents")
		s.status.SetStatus(StatusDocumentsFailed)
		return err
	}

	if docs == nil {
		return nil
	}
	area.Replace(view.Documents(*docs))
	return nil
}

// expire drops a session the backend no longer accepts
func (s *DashboardService) expire(ctx context.Context, path string) {
	s.logger.Info().
		Str("path", path).
		Msg("session expired")

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to clear session")
	}

	if err := s.eventPub.PublishSessionExpired(ctx, path); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to publish session expiry")
	}

	s.nav.Navigate(core.PageIndex)
}
