package cmd

import (
	"fmt"

	"github.com/grovetools/catalogd/cli"
	"github.com/grovetools/catalogd/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the catalog schema",
		Long: `Print the schema text served at GET /schema.

With --json the JSON Schema for POST /graphql request bodies is printed instead.
With --remote the schema is fetched from the running server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cli.GetOptions(cmd).JSONOutput {
				data, err := schema.RequestSchema()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				c, err := newClient(cmd)
				if err != nil {
					return err
				}
				defer c.Close()

				text, err := c.Schema(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}

			fmt.Fprint(out, schema.Render())
			return nil
		},
	}
	cmd.Flags().Bool("remote", false, "Fetch the schema from the running server")
	return cmd
}
