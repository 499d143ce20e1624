package cli

import (
	"os"

	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ServerEnv overrides the default --server value.
const ServerEnv = "CATALOGD_SERVER"

// CommandOptions holds common options for catalogd commands
type CommandOptions struct {
	ConfigFile string
	Server     string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with the standard catalogd flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to catalogd.yml config file")
	cmd.PersistentFlags().StringP("server", "s", "", "Server address (default: server.addr from config, or $"+ServerEnv+")")

	return cmd
}

// GetLogger returns the CLI logger adjusted for the command flags
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("catalogd-cli")

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return entry
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	server, _ := cmd.Flags().GetString("server")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Server:     server,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the --config file, the discovered file, or the defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadOrDefault(GetOptions(cmd).ConfigFile, GetLogger(cmd))
}

// ServerAddr resolves the server to talk to: --server, then $CATALOGD_SERVER,
// then server.addr from the configuration.
func ServerAddr(cmd *cobra.Command) (string, error) {
	if server := GetOptions(cmd).Server; server != "" {
		return server, nil
	}
	if server := os.Getenv(ServerEnv); server != "" {
		return server, nil
	}
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Server.Addr, nil
}
