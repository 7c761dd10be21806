package cmd

import (
	"fmt"

	"hungie/config"
	"hungie/workspace"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hungie configuration",
	Long: `Get and set configuration values for hungie. Values are saved to
.hungie/config.json in the current workspace.

Keys: api_base_url, context_window, request_timeout_seconds, log_level, log_file`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		workspacePath, err := workspace.DetectWorkspace()
		if err != nil {
			return fmt.Errorf("error detecting workspace: %w", err)
		}

		cfg, err := config.LoadConfig(workspacePath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		value, err := cfg.Get(key)
		if err != nil {
			return fmt.Errorf("error getting config value: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		workspacePath, err := workspace.DetectWorkspace()
		if err != nil {
			return fmt.Errorf("error detecting workspace: %w", err)
		}

		cfg, err := config.LoadLocalConfig(workspacePath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("error setting config value: %w", err)
		}

		if err := config.SaveLocalConfig(workspacePath, cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
