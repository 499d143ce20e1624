package cmd

import (
	"github.com/grovetools/catalogd/cli"
	"github.com/grovetools/catalogd/version"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the catalogd command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"catalogd",
		"In-memory cat catalog served over a GraphQL-style HTTP API",
	)
	rootCmd.Long = `catalogd keeps an in-memory catalog of cats and serves it over HTTP.

GET  /schema   returns the schema text
POST /graphql  runs the listCats query or the addCat mutation`
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewStopCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewCatsCmd())
	rootCmd.AddCommand(NewSchemaCmd())
	rootCmd.AddCommand(NewLogsCmd())
	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("catalogd"))

	return rootCmd
}
