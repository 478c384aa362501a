package commands

import (
	"github.com/spf13/cobra"

	"github.com/layer-3/tidbit/adapters/wallet"
	"github.com/layer-3/tidbit/app"
	"github.com/layer-3/tidbit/core"
)

var (
	walletRPC   string
	keystoreDir string
	account     string
	noConfirm   bool
	noFollow    bool
)

var passphrasePrompt = wallet.PromptPassphrase

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your Ethereum wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if walletRPC != "" {
				cfg.Wallet.RPCURL = walletRPC
			}
			if keystoreDir != "" {
				cfg.Wallet.KeystoreDir = keystoreDir
			}
			if account != "" {
				cfg.Wallet.Account = account
			}
			if noConfirm {
				cfg.Wallet.Confirm = false
			}

			w, err := wire(cmd, true)
			if err != nil {
				return err
			}
			defer w.Close()

			clicks := make(chan struct{}, 1)
			clicks <- struct{}{}
			close(clicks)

			if err := w.App.Bootstrap(cmd.Context(), app.Layout{LoginControl: clicks}); err != nil {
				return err
			}

			// landing on the dashboard bootstraps it like any other page load
			if page, ok := w.Navigator.Current(); ok && page == core.PageDashboard && !noFollow {
				return w.App.Bootstrap(cmd.Context(), dashboardLayout(cmd))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&walletRPC, "wallet-rpc", "", "wallet JSON-RPC endpoint")
	cmd.Flags().StringVar(&keystoreDir, "keystore", "", "keystore directory (default ~/.tidbit/keystore)")
	cmd.Flags().StringVar(&account, "account", "", "account address to use")
	cmd.Flags().BoolVar(&noConfirm, "yes", false, "skip wallet approval prompts")
	cmd.Flags().BoolVar(&noFollow, "no-dashboard", false, "do not open the dashboard after login")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(cmd, false)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.App.Logout(cmd.Context()); err != nil {
				return err
			}
			if _, ok := w.Navigator.Current(); ok {
				cmd.Println("Logged out")
			} else {
				cmd.Println("Not logged in")
			}
			return nil
		},
	}
}
