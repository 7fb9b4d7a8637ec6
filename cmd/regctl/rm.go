package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/store"
)

func init() {
	rootCmd.AddCommand(newRmCmd())
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path> [name]",
		Short: "Delete a value, or a key without subkeys",
		Long: `The rm command deletes the named value of a key, or the key itself when
no value name is given. Keys that still have subkeys are not deleted.

Example:
  regctl rm "Software/Vendor" "Obsolete"
  regctl rm "Software/Vendor/Product"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args)
		},
	}
}

func runRm(args []string) error {
	keyPath := store.JoinPath(args[0])
	result := map[string]any{"path": keyPath, "success": true}

	var err error
	if len(args) == 2 {
		result["name"] = args[1]
		err = withKey(keyPath, false, func(k *registry.Key) error {
			return k.DeleteValue(args[1])
		})
	} else {
		err = deleteKey(keyPath)
	}
	if err != nil {
		return report("delete", err)
	}

	if jsonOut {
		return printJSON(result)
	}
	printInfo("Deleted %s\n", keyPath)
	return nil
}

// deleteKey deletes the key at path. Key.Delete closes the key on success,
// so this does not go through withKey.
func deleteKey(path string) (err error) {
	s, release, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := release(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return removeKey(s, path)
}

// removeKey opens path in s and deletes it. A key left open by a failed
// delete is closed, and a close failure is returned with the delete error.
func removeKey(s store.Store, path string) error {
	k, err := registry.Open(s, path, keyOptions(cfg)...)
	if err != nil {
		return err
	}
	if err := k.Delete(); err != nil {
		if !k.Closed() {
			err = errors.Join(err, k.Close())
		}
		return err
	}
	return nil
}
