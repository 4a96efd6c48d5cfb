package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/actions"
)

// installsCmd finds everything that installs a package.
var installsCmd = &cobra.Command{
	Use:   "installs PACKAGE",
	Short: "List policies and imaging configurations which install a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		return r.Installs(cmd.Context(), args[0])
	},
}

// promoteOpts holds the promote flags.
var promoteOpts actions.PromoteOptions

// promoteCmd swaps the package a policy installs.
var promoteCmd = &cobra.Command{
	Use:   "promote [POLICY] [NEW_PACKAGE]",
	Short: "Replace the package a policy installs with a newer one",
	Long: `Replace the package installed by POLICY with NEW_PACKAGE.

Without POLICY, choose from the policies installing a package for which a newer
version exists on the server. Without NEW_PACKAGE, choose from the packages of
the same product; the newest version is the default.

Package names are expected to look like "Product-1.2.3.pkg", "Product_1.2.3.pkg.zip"
or "Product 1.2.3.dmg".`,
	Example: `  jss-helper promote "Install Nethack-3.4.3" Nethack-3.4.4.pkg --update_name`,
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		opts := promoteOpts
		opts.Policy = optionalArg(args, 0)
		opts.Package = optionalArg(args, 1)
		return r.Promote(cmd.Context(), opts)
	},
}

func init() {
	promoteCmd.Flags().BoolVarP(&promoteOpts.UpdateName, "update_name", "u", false,
		"Replace the product name and version in the policy name with the new package's")
	rootCmd.AddCommand(installsCmd, promoteCmd)
}
