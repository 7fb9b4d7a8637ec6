package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Show key metadata",
		Long: `The info command prints the subkey and value counts, the longest names
and data, the class string and the last write time of a key.

Example:
  regctl info "Software/Vendor"
  regctl info "HKLM\\Software" --backend windows --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
}

func runInfo(args []string) error {
	keyPath := args[0]
	return withKey(keyPath, false, func(k *registry.Key) error {
		info, err := k.Info()
		if err != nil {
			return report("query key", err)
		}

		if jsonOut {
			return printJSON(map[string]any{
				"path":                k.Path(),
				"subkeys":             info.SubkeyCount,
				"values":              info.ValueCount,
				"max_subkey_name_len": info.MaxSubkeyNameLen,
				"max_value_name_len":  info.MaxValueNameLen,
				"max_value_data_len":  info.MaxValueDataLen,
				"class":               info.Class,
				"last_write":          info.LastWrite.Format(time.RFC3339),
			})
		}

		printInfo("Key:        %s\n", k.Path())
		printInfo("Subkeys:    %d\n", info.SubkeyCount)
		printInfo("Values:     %d\n", info.ValueCount)
		if info.Class != "" {
			printInfo("Class:      %s\n", info.Class)
		}
		if !info.LastWrite.IsZero() {
			printInfo("Last write: %s\n", info.LastWrite.Format(time.RFC3339))
		}
		return nil
	})
}
