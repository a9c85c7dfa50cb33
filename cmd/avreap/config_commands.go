package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"avreap/internal/config"
	"avreap/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigCheckCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a sample configuration file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = strings.TrimSpace(args[0])
			}
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("config file already exists at %s", target)
			} else if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("check config path: %w", err)
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}
	return cmd
}

func newConfigCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "check [path]",
		Short:       "Load and validate a configuration file without starting the daemon",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			cfg, resolvedPath, exists, err := config.Load(path)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Config", statusError, err.Error(), colorize))
				return err
			}
			fmt.Fprintln(out, renderStatusLine("Config path", statusInfo, resolvedPath, colorize))
			if !exists {
				fmt.Fprintln(out, renderStatusLine("Config file", statusWarn, "did not exist; defaults were used", colorize))
			}

			for _, line := range renderSectionHeader("Startup preflight", colorize) {
				fmt.Fprintln(out, line)
			}

			failed := false
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed = true
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if failed {
				return fmt.Errorf("configuration check failed one or more startup checks")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
