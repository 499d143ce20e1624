package cmd

import (
	"io"
	"os"

	"github.com/grovetools/catalogd/errors"
	"github.com/grovetools/catalogd/logging"
	"github.com/grovetools/catalogd/tui/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewBrowseCmd returns the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long:  "Open a terminal table of the catalog that updates live as entries are added.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New(errors.ErrCodeInvalidInput, "browse needs an interactive terminal; use 'catalogd cats list' instead")
			}

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if !c.IsRunning(cmd.Context()) {
				return errors.ServerUnavailable(c.BaseURL(), nil)
			}

			// Keep log lines from drawing over the table
			logging.SetGlobalOutput(io.Discard)
			defer logging.SetGlobalOutput(os.Stderr)

			return browser.Run(cmd.Context(), c)
		},
	}
}
