// Package app wires the auth and dashboard services into a page-driven client.
package app

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/layer-3/tidbit"
	"github.com/layer-3/tidbit/ports"
	"github.com/layer-3/tidbit/service"
)

// App is the assembled client
type App struct {
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Logger    zerolog.Logger
}

var _ tidbit.Client = (*App)(nil)

// Layout describes which controls and areas the current page has
type Layout struct {
	// LoginControl delivers login clicks; nil when the page has no login control.
	// Bootstrap keeps serving clicks until the channel is closed.
	LoginControl <-chan struct{}

	// SessionInfo receives the session document on the dashboard
	SessionInfo ports.Display

	// DocumentList marks the dashboard page; nil elsewhere
	DocumentList ports.Display
}

// Bootstrap binds the page once its layout is known. On the dashboard both
// loaders start at once and run independently; Bootstrap returns when every
// started flow is done, with the first error seen.
func (a *App) Bootstrap(ctx context.Context, layout Layout) error {
	var g errgroup.Group

	if layout.LoginControl != nil {
		g.Go(func() error {
			return a.serveLogin(ctx, layout.LoginControl)
		})
	}

	if layout.DocumentList != nil {
		a.Logger.Debug().Msg("dashboard detected, loading data")

		info := layout.SessionInfo
		if info == nil {
			info = discard{}
		}
		g.Go(func() error {
			return a.Dashboard.LoadSessionInfo(ctx, info)
		})
		g.Go(func() error {
			return a.Dashboard.LoadDocuments(ctx, layout.DocumentList)
		})
	}

	return g.Wait()
}

// serveLogin runs one login per click; the result of the last one is returned
func (a *App) serveLogin(ctx context.Context, clicks <-chan struct{}) error {
	var last error
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-clicks:
			if !ok {
				return last
			}
			last = a.Auth.Login(ctx)
		}
	}
}

// Login signs in with the wallet
func (a *App) Login(ctx context.Context) error {
	return a.Auth.Login(ctx)
}

// Logout drops the session
func (a *App) Logout(ctx context.Context) error {
	return a.Auth.Logout(ctx)
}

// LoadSessionInfo renders the session into area
func (a *App) LoadSessionInfo(ctx context.Context, area ports.Display) error {
	return a.Dashboard.LoadSessionInfo(ctx, area)
}

// LoadDocuments renders the documents into area
func (a *App) LoadDocuments(ctx context.Context, area ports.Display) error {
	return a.Dashboard.LoadDocuments(ctx, area)
}

type discard struct{}

func (discard) Replace(string) {}
