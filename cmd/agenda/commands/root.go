package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agenda",
		Short: "Event agenda server and tooling",
		Long: `agenda serves the event agenda API: organizers build a multi-day
schedule, attendees pick one session per simultaneous group, and every
connected client receives a fresh snapshot whenever the agenda changes.

Configuration comes from the environment (and a .env file outside
production): DATABASE_URL, PORT, JWT_SECRET, REDIS_URL, SELECTION_STORE,
CONTEXT_TIMEOUT, RETRY_ATTEMPTS, CORS_ALLOWED_ORIGINS, SESSIONIZE_URL.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newImportCmd(), newTokenCmd())
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
