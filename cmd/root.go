package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/actions"
	"github.com/jssimporter/jss-helper/internal/config"
	"github.com/jssimporter/jss-helper/internal/logger"
	"github.com/jssimporter/jss-helper/internal/prompt"
)

// Global flags, shared by every subcommand.
var (
	// verbose turns on debug logging, including every HTTP request.
	verbose bool
	// noColor disables colored log output.
	noColor bool
	// configPath is the YAML preferences file; AutoPkg and python-jss plists are fallbacks.
	configPath string
)

// rootCmd is the base command for the CLI tool `jss-helper`.
// It only holds global flags; every action is a subcommand.
var rootCmd = &cobra.Command{
	Use:   "jss-helper",
	Short: "Query and modify objects on a Jamf Pro server",
	Long: `jss-helper searches a Jamf Pro server with IDs, names or shell-style wildcards
(*, ?, [seq], [!seq]), reports group scoping and package usage, and changes
group membership, policy scope and the packages policies install.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the verbose and color flags.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, noColor)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored log output")
	flags.StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the preferences file")
	flags.Bool("ssl", false, "Verify the server's TLS certificate, overriding the preferences")
	flags.Bool("nossl", false, "Do not verify the server's TLS certificate, overriding the preferences")
	rootCmd.MarkFlagsMutuallyExclusive("ssl", "nossl")
}

// Execute runs the command line and exits with its status.
// Ctrl-C cancels whatever request is in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stdout))
}

// exitCode reports err to the user and maps it to a process exit status.
// Messages meant for the user go to out as-is; anything else is logged.
func exitCode(err error, out io.Writer) int {
	var (
		notFound *actions.NotFoundError
		usage    *actions.UsageError
	)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled), errors.Is(err, context.Canceled):
		return 1
	case errors.As(err, &notFound):
		fmt.Fprintln(out, notFound.Message)
	case errors.As(err, &usage):
		fmt.Fprintln(out, usage.Message)
	default:
		logger.Error("[ERROR] %v\n", err)
	}
	return 1
}
