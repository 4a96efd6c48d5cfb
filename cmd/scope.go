package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/jss"
)

// newScopedCmd lists what is scoped to a group.
func newScopedCmd(use string, kind jss.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return r.Scoped(cmd.Context(), kind, args[0])
		},
	}
}

// newExcludedCmd lists what excludes a group from scope.
func newExcludedCmd(use string, kind jss.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return r.Excluded(cmd.Context(), kind, args[0])
		},
	}
}

// newScopeDiffCmd compares the scope reports of two groups.
func newScopeDiffCmd(use string, kind jss.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP1 GROUP2",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return r.ScopeDiff(cmd.Context(), kind, args[0], args[1])
		},
	}
}

// batchScopeCmd scopes many policies to many groups in one go.
var batchScopeCmd = &cobra.Command{
	Use:   "batch_scope GROUP POLICY...",
	Short: "Scope policies to computer groups",
	Long: `Scope every policy matching each POLICY to every computer group matching GROUP.
GROUP and POLICY accept IDs, names or wildcard patterns. Each policy is saved
as soon as it has been scoped.`,
	Example: `  jss-helper batch_scope "Lab Macs" "Install *" 42`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		return r.BatchScope(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(
		newScopedCmd("scoped", jss.ComputerGroup,
			"List policies and configuration profiles scoped to a computer group"),
		newScopedCmd("md_scoped", jss.MobileDeviceGroup,
			"List mobile device configuration profiles scoped to a mobile device group"),
		newExcludedCmd("excluded", jss.ComputerGroup,
			"List policies and configuration profiles excluding a computer group"),
		newExcludedCmd("md_excluded", jss.MobileDeviceGroup,
			"List mobile device configuration profiles excluding a mobile device group"),
		newScopeDiffCmd("scope_diff", jss.ComputerGroup,
			"Show the difference in scoping between two computer groups"),
		newScopeDiffCmd("md_scope_diff", jss.MobileDeviceGroup,
			"Show the difference in scoping between two mobile device groups"),
		batchScopeCmd,
	)
}
