// File: cmd/ossgate/providers_cmd.go
package main

import (
	"fmt"
	"ossgate/internal/flags"
	"ossgate/internal/provider/registry"
	"ossgate/pkg/common"
	"ossgate/pkg/formatter"
	"strings"

	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	var output string

	providersCmd := &cobra.Command{
		Use:   "providers [provider]",
		Short: "List supported providers and their regions",
		Long:  `Lists every supported provider with its default region and endpoint template. Name a provider to see its regions.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			catalogue := registry.Catalogue()
			if len(args) == 0 {
				if output != formatter.OutputTable {
					return formatter.Encode(cmd.OutOrStdout(), output, catalogue)
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.StorageFormatter.FormatProviders(catalogue))
				return nil
			}

			name := common.ParseProvider(args[0]).String()
			for _, p := range catalogue {
				if p.Name != name {
					continue
				}
				if output != formatter.OutputTable {
					return formatter.Encode(cmd.OutOrStdout(), output, p)
				}
				fmt.Fprint(cmd.OutOrStdout(), app.StorageFormatter.FormatProviderDetails(p))
				return nil
			}
			return fmt.Errorf("unsupported provider '%s'. Supported providers are: %s", args[0], strings.Join(registry.GetSupportedProviders(), ", "))
		},
	}
	providersCmd.Flags().StringVarP(&output, flags.Output, flags.OutputShort, formatter.OutputTable, "Output format: table, json or yaml")
	return providersCmd
}
