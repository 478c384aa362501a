package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/layer-3/tidbit/app"
	"github.com/layer-3/tidbit/internal/config"
	"github.com/layer-3/tidbit/internal/log"
)

var (
	configPath string
	apiURL     string
	storeKind  string
	logLevel   string

	cfg config.Config
)

// Execute runs the tidbit CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger := log.New("cli")
		logger.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tidbit",
		Short:         "Wallet-authenticated client for the tidbit document API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if apiURL != "" {
				loaded.API = apiURL
			}
			if storeKind != "" {
				loaded.Store.Kind = storeKind
			}
			if logLevel != "" {
				loaded.LogLevel = logLevel
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			log.SetLevel(loaded.LogLevel)
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (default http://localhost:4100)")
	root.PersistentFlags().StringVar(&storeKind, "store", "", "session store: memory, file or redis")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level")

	root.AddCommand(loginCmd(), logoutCmd(), dashboardCmd(), sessionCmd(), docsCmd())
	return root
}

// wire builds the client for one command run
func wire(cmd *cobra.Command, needWallet bool) (*app.Wire, error) {
	return app.NewWire(cmd.Context(), cfg, app.Options{
		StatusOut:  cmd.ErrOrStderr(),
		NeedWallet: needWallet,
		Passphrase: passphrasePrompt,
	})
}
