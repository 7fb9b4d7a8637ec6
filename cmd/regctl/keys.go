package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/store"
)

var (
	keysRecursive bool
	keysDepth     int
)

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVarP(&keysRecursive, "recursive", "r", false, "List all subkeys recursively")
	cmd.Flags().IntVar(&keysDepth, "depth", 0, "Maximum recursion depth (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [path]",
		Short: "List subkeys of a key",
		Long: `The keys command lists the subkeys of a key in enumeration order.
If no path is specified, lists keys at the root.

Example:
  regctl keys
  regctl keys "Software/Vendor"
  regctl keys "Software" --recursive --depth 2 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

type keyEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func runKeys(args []string) error {
	var keyPath string
	if len(args) > 0 {
		keyPath = args[0]
	}

	var keys []keyEntry
	err := withKey(keyPath, false, func(k *registry.Key) error {
		return collectKeys(k, "", 1, &keys)
	})
	if err != nil {
		return report("list keys", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":  store.JoinPath(keyPath),
			"keys":  keys,
			"count": len(keys),
		})
	}
	for _, key := range keys {
		if keysRecursive {
			printInfo("%s\n", key.Path)
		} else {
			printInfo("%s\n", key.Name)
		}
	}
	return nil
}

// collectKeys appends the subkeys of k, descending when --recursive is set.
// rel is k's path relative to the listing root.
func collectKeys(k *registry.Key, rel string, depth int, out *[]keyEntry) error {
	return k.ForEachSubkey(func(name string) error {
		path := store.JoinPath(rel, name)
		*out = append(*out, keyEntry{Name: name, Path: path})
		if !keysRecursive || (keysDepth > 0 && depth >= keysDepth) {
			return nil
		}
		sub, err := k.OpenSubkey(name)
		if err != nil {
			return err
		}
		err = collectKeys(sub, path, depth+1, out)
		if cerr := sub.Close(); cerr != nil && err == nil {
			err = cerr
		}
		return err
	})
}
