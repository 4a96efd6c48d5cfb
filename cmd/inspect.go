package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/actions"
)

// inspectCmd works on local files only, so it never loads preferences.
var inspectCmd = &cobra.Command{
	Use:   "inspect ARCHIVE",
	Short: "List a package archive's contents and the versions their names carry",
	Long: `List the entries of a local .zip, .7z, .tar, .tar.gz, .tgz, .tar.bz2 or .tar.xz
archive and parse the product name and version from the archive name and from
each top-level entry, the same way promote ranks packages on the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := &actions.Runner{Out: cmd.OutOrStdout()}
		return r.Inspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
