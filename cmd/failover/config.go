package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/failover/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(configValidateCmd())
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())

	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args[0])
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if errs := config.ValidateConfig(cfg); len(errs) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "Configuration errors:")
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e)
				}
				return errors.New("configuration is invalid")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DefaultConfig().Marshal()
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists", output)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func configShowCmd() *cobra.Command {
	var configFile, format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "yaml":
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(data)
			default:
				return fmt.Errorf("unknown format %q: must be yaml or json", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	return cmd
}

// loadConfig loads path, or the defaults when path is empty, and applies
// FAILOVER_* environment overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	config.ApplyEnvOverrides(cfg)
	return cfg, nil
}
