// File: cmd/ossgate/root.go
package main

import (
	"context"
	"fmt"
	"ossgate/internal/flags"
	"ossgate/internal/provider/registry"
	"strings"

	"github.com/spf13/cobra"
)

// Commands carrying this annotation only need the config manager
const annotationManagerOnly = "ossgate/manager-only"

type rootFlags struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	rf := rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "ossgate",
		Short: "ossgate is a gateway to S3-compatible object storage across cloud providers.",
		Long: `A unified CLI and HTTP gateway for S3-compatible object storage.
Configure named profiles for providers such as ` + strings.Join(registry.GetSupportedProviders(), ", ") + `
and list, upload, download and delete objects from one place.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(appOptions{
				configPath:  rf.configPath,
				debug:       rf.debug,
				managerOnly: managerOnly(cmd),
				stdin:       cmd.InOrStdin(),
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&rf.configPath, flags.Config, flags.ConfigShort, "", "Path to the config file (default ~/.config/ossgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rf.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")

	rootCmd.AddCommand(
		newBucketsCmd(),
		newLsCmd(),
		newPutCmd(),
		newGetCmd(),
		newRmCmd(),
		newMkdirCmd(),
		newBrowseCmd(),
		newProvidersCmd(),
		newConfigCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func managerOnly(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationManagerOnly] == "true" {
			return true
		}
	}
	return false
}

// Runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
