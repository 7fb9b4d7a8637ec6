package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(newMkkeyCmd())
}

func newMkkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkkey <path>",
		Short: "Create a key and any missing parents",
		Long: `The mkkey command creates a key. Existing keys are left as they are.

Example:
  regctl mkkey "Software/Vendor/Product"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkkey(args)
		},
	}
}

func runMkkey(args []string) error {
	var path string
	err := withKey(args[0], true, func(k *registry.Key) error {
		path = k.Path()
		return nil
	})
	if err != nil {
		return report("create key", err)
	}
	if jsonOut {
		return printJSON(map[string]any{"path": path, "success": true})
	}
	printInfo("Created %s\n", path)
	return nil
}
