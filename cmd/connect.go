package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jssimporter/jss-helper/internal/actions"
	"github.com/jssimporter/jss-helper/internal/config"
	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/logger"
	"github.com/jssimporter/jss-helper/internal/prompt"
	"github.com/jssimporter/jss-helper/internal/report"
)

// loadConfig reads the preferences and applies the command line overrides.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(configPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	applySSLFlags(flags, cfg)
	return cfg, nil
}

// applySSLFlags lets --ssl and --nossl override the preferences' verify setting.
func applySSLFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if on, _ := flags.GetBool("ssl"); on && flags.Changed("ssl") {
		cfg.VerifySSL = true
	}
	if off, _ := flags.GetBool("nossl"); off && flags.Changed("nossl") {
		cfg.VerifySSL = false
	}
}

// connect builds the API client once for the running command and checks the
// server version when the preferences require a minimum.
func connect(cmd *cobra.Command) (*jss.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	client := jss.New(cfg)
	if cfg.MinServerVersion != "" {
		v, err := client.CheckServerVersion(cmd.Context(), cfg.MinServerVersion)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("[DEBUG] Server version %s satisfies minimum %s\n", v, cfg.MinServerVersion)
	}
	return client, cfg, nil
}

// newRunner wires the collaborators every server action needs.
func newRunner(cmd *cobra.Command) (*actions.Runner, error) {
	client, _, err := connect(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &actions.Runner{
		Client:  client,
		Out:     cmd.OutOrStdout(),
		Chooser: prompt.New(os.Stdin, os.Stdout),
		Differ:  report.ExecDiffer{},
		Browser: actions.ExecBrowser{},
	}, nil
}
