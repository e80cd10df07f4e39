// File: cmd/ossgate/config_cmd.go
package main

import (
	"fmt"
	"ossgate/internal/flags"
	"ossgate/pkg/formatter"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration settings",
		Long:        `Manage configuration settings such as profiles, timeouts and logging. You can set, get, list, and delete configuration values.`,
		Annotations: map[string]string{annotationManagerOnly: "true"},
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'ossgate config set profiles.prod.provider aliyun'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			if isSecretKey(key) {
				value = "****"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves the effective value of a key, including defaults and OSSGATE_ environment overrides. For example: 'ossgate config get timeouts.list'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value, exists, err := app.ConfigManager.GetValue(key)
			if err != nil {
				return err
			}

			if !exists || value == "" {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}

	var force bool
	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Deletes a configuration value, or a whole profile. For example: 'ossgate config delete profiles.prod'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			if strings.Count(key, ".") == 1 && strings.HasPrefix(key, "profiles.") && !force {
				confirmed, err := app.Prompter.ConfirmYes(fmt.Sprintf("Delete the whole profile '%s'?", strings.TrimPrefix(key, "profiles.")))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}

			deleted, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}

			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration key '%s' deleted\n", key)
			return nil
		},
	}
	configDeleteCmd.Flags().BoolVarP(&force, flags.Force, flags.ForceShort, false, "Delete a whole profile without asking for confirmation")

	var output string
	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays the effective configuration. Access and secret keys are masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			settings := formatter.RedactSettings(app.ConfigManager.GetAllSettings())
			if output != formatter.OutputTable {
				return formatter.Encode(cmd.OutOrStdout(), output, settings)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Current configuration ("+app.ConfigManager.Path()+"):")
			fmt.Fprintln(cmd.OutOrStdout(), app.StorageFormatter.FormatSettings(settings))
			return nil
		},
	}
	configListCmd.Flags().StringVarP(&output, flags.Output, flags.OutputShort, formatter.OutputTable, "Output format: table, json or yaml")

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".access_key") || strings.HasSuffix(key, ".secret_key")
}
