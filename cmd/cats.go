package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grovetools/catalogd/cli"
	"github.com/grovetools/catalogd/logging"
	"github.com/grovetools/catalogd/pkg/client"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/tui/components/table"
	"github.com/grovetools/catalogd/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewCatsCmd returns the cats command group.
func NewCatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cats",
		Short: "List, add and watch catalog entries on a running server",
	}
	cmd.AddCommand(newCatsListCmd())
	cmd.AddCommand(newCatsAddCmd())
	cmd.AddCommand(newCatsWatchCmd())
	return cmd
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	addr, err := cli.ServerAddr(cmd)
	if err != nil {
		return nil, err
	}
	return client.New(addr), nil
}

func newCatsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every entry in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			cats, err := c.ListCats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(cats, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(cats) == 0 {
				fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("The catalog is empty."))
				return nil
			}
			fmt.Fprintln(out, table.RenderCats(cats))
			return nil
		},
	}
}

// colourFlag validates --colour against the known coat colours.
type colourFlag struct {
	value models.Colour
}

var _ pflag.Value = (*colourFlag)(nil)

func (f *colourFlag) String() string { return string(f.value) }

func (f *colourFlag) Set(s string) error {
	c, err := models.ParseColour(s)
	if err != nil {
		return err
	}
	f.value = c
	return nil
}

func (f *colourFlag) Type() string { return "colour" }

func colourNames() string {
	names := make([]string, 0, len(models.Colours()))
	for _, c := range models.Colours() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func newCatsAddCmd() *cobra.Command {
	colour := &colourFlag{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to the catalog",
		Example: `  catalogd cats add --name Tom --colour Grey --nickname Thomas
  catalogd cats add --name Salem --colour Black --pic-url https://example.com/salem.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			nicknames, _ := cmd.Flags().GetStringArray("nickname")
			picURL, _ := cmd.Flags().GetString("pic-url")

			cat := models.NewCat(name, colour.value, picURL, nicknames...)

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.AddCat(cmd.Context(), cat); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.Marshal(cat)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			logging.NewPrettyLogger().WithWriter(out).Success(fmt.Sprintf("Added %s", cat.Name))
			return nil
		},
	}

	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().StringArray("nickname", nil, "Nickname (repeatable)")
	cmd.Flags().String("pic-url", "", "Picture URL")
	cmd.Flags().Var(colour, "colour", "Coat colour, one of: "+colourNames())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("colour")
	return cmd
}

func newCatsWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print entries as they are added",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := c.Subscribe(ctx)
			if err != nil {
				return err
			}
			return printEvents(ctx, cmd, events)
		},
	}
}

func printEvents(ctx context.Context, cmd *cobra.Command, events <-chan models.Cat) error {
	out := cmd.OutOrStdout()
	jsonOutput := cli.GetOptions(cmd).JSONOutput

	for cat := range events {
		if jsonOutput {
			data, err := json.Marshal(cat)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n",
			theme.DefaultTheme.Success.Render("+"),
			cat.Name,
			theme.ColourStyle(cat.Colour).Render("("+string(cat.Colour)+")"))
	}

	if ctx.Err() == nil {
		return fmt.Errorf("subscription closed by server")
	}
	return nil
}
