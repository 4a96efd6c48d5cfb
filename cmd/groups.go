package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jssimporter/jss-helper/internal/actions"
	"github.com/jssimporter/jss-helper/internal/jss"
)

// newGroupCmd builds a group search command that can also change static membership.
func newGroupCmd(use string, kind jss.Kind, device string) *cobra.Command {
	var opts actions.GroupOptions
	cmd := &cobra.Command{
		Use:   use + " [GROUP]",
		Short: "List all " + kind.String() + "s, search for one, or add and remove " + device + "s",
		Long: `Without --add or --remove, list all groups or search for GROUP by ID, name
or wildcard pattern.

With --add or --remove, change the static membership of GROUP. Each flag takes
ONE device ID, name or wildcard pattern; repeat the flag for several devices
(--add lab-01 --add lab-02). Use --dry_run to print the modified group instead
of saving it.`,
		Example: "  jss-helper " + use + ` "Lab Macs" --add "lab-*" --remove lab-07 --dry_run
  jss-helper ` + use + ` "Lab Macs" --add lab-01 --add lab-02`,
		Args:    groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			opts.Kind = kind
			opts.Group = optionalArg(args, 0)
			return r.Group(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.Add, "add", nil, device+" to add to the group (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Remove, "remove", nil, device+" to remove from the group (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry_run", false, "Print the group XML instead of saving it")
	return cmd
}

// groupArgs accepts at most the group; extra words get the repeated-flag hint.
func groupArgs(cmd *cobra.Command, args []string) error {
	if len(args) <= 1 {
		return nil
	}
	return &actions.UsageError{Message: fmt.Sprintf(
		"Unexpected arguments: %s. --add and --remove take one value each; repeat the flag for several (--add a --add b).",
		strings.Join(args[1:], " "))}
}

func init() {
	rootCmd.AddCommand(newGroupCmd("group", jss.ComputerGroup, "computer"))
	rootCmd.AddCommand(newGroupCmd("md_group", jss.MobileDeviceGroup, "mobile device"))
}
