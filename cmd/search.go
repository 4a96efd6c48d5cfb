package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/jss"
)

// searchCommands are the plain object searches. Each takes an optional ID, name
// or wildcard search; without one it lists every object of its kind.
var searchCommands = []struct {
	use   string
	short string
	kind  jss.Kind
}{
	{"category", "List all categories, or search for an individual category", jss.Category},
	{"computer", "List all computers, or search for an individual computer", jss.Computer},
	{"configp", "List all configuration profiles, or search for an individual profile", jss.OSXConfigurationProfile},
	{"imaging_config", "List all imaging configurations, or search for an individual one", jss.ComputerConfiguration},
	{"md", "List all mobile devices, or search for an individual device", jss.MobileDevice},
	{"md_configp", "List all mobile device configuration profiles, or search for an individual profile", jss.MobileDeviceConfigurationProfile},
	{"package", "List all packages, or search for an individual package", jss.Package},
	{"policy", "List all policies, or search for an individual policy", jss.Policy},
}

// newSearchCmd builds a search subcommand for kind.
func newSearchCmd(use, short string, kind jss.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [SEARCH]",
		Short: short,
		Long: short + `.

SEARCH is an ID, an exact name, or a name pattern using *, ?, [seq] or [!seq].
Quote patterns so the shell does not expand them. A single match is printed as
XML; several are printed as a table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return r.Search(cmd.Context(), kind, optionalArg(args, 0))
		},
	}
}

// optionalArg returns args[i], or "" when it was not given.
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func init() {
	for _, s := range searchCommands {
		rootCmd.AddCommand(newSearchCmd(s.use, s.short, s.kind))
	}
}
