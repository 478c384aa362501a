package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/layer-3/tidbit/app"
	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/view"
)

func dashboardLayout(cmd *cobra.Command) app.Layout {
	return app.Layout{
		SessionInfo:  &view.Section{Title: "Session", W: cmd.OutOrStdout()},
		DocumentList: &view.Section{Title: "Documents", W: cmd.OutOrStdout()},
	}
}

// redirected turns a redirect to the index page into a hint for the user
func redirected(cmd *cobra.Command, w *app.Wire, err error) error {
	if page, ok := w.Navigator.Current(); ok && page == core.PageIndex {
		cmd.PrintErrln("Not logged in. Run `tidbit login`.")
		if errors.Is(err, core.ErrNoSession) || errors.Is(err, core.ErrUnauthorized) {
			return nil
		}
	}
	return err
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the session and document list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(cmd, false)
			if err != nil {
				return err
			}
			defer w.Close()

			err = w.App.Bootstrap(cmd.Context(), dashboardLayout(cmd))
			return redirected(cmd, w, err)
		},
	}
}

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(cmd, false)
			if err != nil {
				return err
			}
			defer w.Close()

			err = w.App.LoadSessionInfo(cmd.Context(), &view.Section{Title: "Session", W: cmd.OutOrStdout()})
			return redirected(cmd, w, err)
		},
	}
}

func docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List your documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(cmd, false)
			if err != nil {
				return err
			}
			defer w.Close()

			err = w.App.LoadDocuments(cmd.Context(), &view.Section{Title: "Documents", W: cmd.OutOrStdout()})
			return redirected(cmd, w, err)
		},
	}
}
