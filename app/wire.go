package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/layer-3/tidbit/adapters/events"
	"github.com/layer-3/tidbit/adapters/navigation"
	"github.com/layer-3/tidbit/adapters/store"
	"github.com/layer-3/tidbit/adapters/wallet"
	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/internal/config"
	"github.com/layer-3/tidbit/internal/log"
	"github.com/layer-3/tidbit/ports"
	"github.com/layer-3/tidbit/service"
	transport "github.com/layer-3/tidbit/transport/http"
	"github.com/layer-3/tidbit/view"
)

// Options tune wiring beyond the config file
type Options struct {
	// StatusOut receives status lines; nil keeps them silent
	StatusOut io.Writer

	// HTTP is used for backend calls; nil uses a logging default client
	HTTP *http.Client

	// NeedWallet connects the wallet provider; dashboard-only runs skip it
	NeedWallet bool

	// Wallet overrides the configured wallet provider
	Wallet ports.Wallet

	// Passphrase is asked when the keystore passphrase is not configured
	Passphrase func(label string) (string, error)
}

// Wire bundles the assembled client with the handles the CLI inspects
type Wire struct {
	App       *App
	Store     ports.SessionStore
	Navigator *navigation.Recorder
	Status    *view.StatusLine

	closers []func() error
}

// NewWire constructs the dependency graph from cfg
func NewWire(ctx context.Context, cfg config.Config, opts Options) (*Wire, error) {
	w := &Wire{}

	var redisClient *redis.Client
	if cfg.Store.Kind == config.StoreRedis || cfg.Events.Enabled {
		redisOpts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient = redis.NewClient(redisOpts)
		w.closers = append(w.closers, redisClient.Close)
	}

	switch cfg.Store.Kind {
	case config.StoreMemory:
		w.Store = store.NewMemoryStore()
	case config.StoreFile:
		w.Store = store.NewFileStore(cfg.Store.Path, log.New("store"))
	case config.StoreRedis:
		w.Store = store.NewRedisStore(redisClient, log.New("store"))
	default:
		w.Close()
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}

	var eventPub ports.EventPublisher = events.Nop{}
	if cfg.Events.Enabled {
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to create redis publisher: %w", err)
		}
		w.closers = append(w.closers, publisher.Close)
		eventPub = events.NewWatermillPublisher(publisher, cfg.Events.Topic)
	}

	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Transport: transport.WithLogging(nil, log.New("http"))}
	}
	backend := transport.NewClient(cfg.API, httpClient)

	var walletProvider ports.Wallet
	if opts.NeedWallet {
		provider, err := w.connectWallet(ctx, cfg.Wallet, opts)
		if err != nil {
			w.Close()
			return nil, err
		}
		walletProvider = provider
	}

	w.Navigator = navigation.NewRecorder(log.New("nav"))
	w.Status = &view.StatusLine{W: opts.StatusOut}

	w.App = &App{
		Auth: service.NewAuthService(
			backend, walletProvider, w.Store, w.Navigator, w.Status, eventPub, log.New("auth"),
		),
		Dashboard: service.NewDashboardService(
			backend, w.Store, w.Navigator, w.Status, eventPub, log.New("dashboard"),
		),
		Logger: log.New("app"),
	}
	return w, nil
}

// connectWallet returns nil without error when no provider is configured,
// which the login flow reports as a missing wallet
func (w *Wire) connectWallet(ctx context.Context, cfg config.Wallet, opts Options) (ports.Wallet, error) {
	var provider ports.Wallet

	switch {
	case opts.Wallet != nil:
		provider = opts.Wallet
	case cfg.RPCURL != "":
		rpcWallet, err := wallet.DialRPCWallet(ctx, cfg.RPCURL)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, func() error {
			rpcWallet.Close()
			return nil
		})
		provider = rpcWallet
	case cfg.KeystoreDir != "":
		ks := wallet.OpenKeystore(cfg.KeystoreDir)
		if len(ks.Accounts()) == 0 {
			return nil, nil
		}
		passphrase := cfg.Passphrase
		if passphrase == "" && opts.Passphrase != nil {
			p, err := opts.Passphrase("Keystore passphrase")
			if err != nil {
				return nil, fmt.Errorf("failed to read passphrase: %w", err)
			}
			passphrase = p
		}
		ksWallet, err := wallet.NewKeystoreWallet(ks, cfg.Account, passphrase)
		if err != nil {
			if errors.Is(err, core.ErrNoAccounts) {
				return nil, nil
			}
			return nil, err
		}
		provider = ksWallet
	default:
		return nil, nil
	}

	if cfg.Confirm {
		provider = wallet.NewConfirmingWallet(provider)
	}
	return provider, nil
}

// Close releases connections opened while wiring
func (w *Wire) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
