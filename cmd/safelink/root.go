package main

import (
	"fmt"
	"os"

	"github.com/nao1215/safelink/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for SafeLink.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safelink",
		Short: "Block malicious pages before they are read",
		Long: `SafeLink watches the pages a browser finishes loading and asks a
classification service whether each one is malicious. Malicious pages are
replaced by a warning page that names the blocked URL and the detected
threats.

The classification service is expected at ` + config.DefaultEndpoint + `.
Use --endpoint or the configuration file to point elsewhere.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .safelink in current or home directory)")
	flags.StringP("endpoint", "e", config.DefaultEndpoint,
		"URL of the classification service")
	flags.DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each classification request (0 disables it)")
	flags.String("store", config.StoreSQLite,
		"Storage backend of the blocked analysis: sqlite or memory")
	flags.String("db-dir", "",
		"Directory of the SQLite store (default: XDG data directory)")
	flags.String("log-format", config.LogFormatText,
		"Log output format: text or json")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewWarningCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
