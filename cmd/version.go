package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/jssimporter/jss-helper/cmd.Version=...".
var Version = "dev"

// checkServer asks version to also report the server's version.
var checkServer bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jss-helper version, and optionally the server's",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "jss-helper %s\n", Version)
		if !checkServer {
			return nil
		}

		client, cfg, err := connect(cmd)
		if err != nil {
			return err
		}
		v, err := client.ServerVersion(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Server: %s %s\n", client.URL(), v)
		if cfg.MinServerVersion != "" {
			fmt.Fprintf(out, "Minimum required: %s\n", cfg.MinServerVersion)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&checkServer, "server", false, "Also query the server's version")
	rootCmd.AddCommand(versionCmd)
}
