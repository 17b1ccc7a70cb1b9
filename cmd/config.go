package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/draft/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd returns the config command with show, validate, and schema
// subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the draft configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the merged configuration for the current directory",
		Long: `Shows the final configuration built by merging layers:
1. Global config (~/.config/draft/draft.yml)
2. Project config (draft.yml)
3. Override files (draft.override.yml)
This is useful for debugging configuration issues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cfg, err := config.LoadFrom(cwd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration against the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cfg, err := config.LoadFrom(cwd)
			if err != nil {
				return err
			}

			validator, err := config.NewSchemaValidator()
			if err != nil {
				return fmt.Errorf("failed to build validator: %w", err)
			}
			if err := validator.Validate(cfg); err != nil {
				return err
			}

			fmt.Println("Configuration is valid")
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for draft.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
