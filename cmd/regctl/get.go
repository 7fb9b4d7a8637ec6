package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/types"
)

var getAs string

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getAs, "as", "", "Decode as string, multi, dword or raw (default: from the value type)")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a registry value",
		Long: `The get command reads one value and prints it decoded according to its
type tag, or as forced with --as.

Example:
  regctl get "Software/Vendor" "InstallDir"
  regctl get "Software/Vendor" "Paths" --as multi
  regctl get "Software/Vendor" "Flags" --as raw --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

// decoderFor picks the decoder for a value with tag t.
func decoderFor(t types.RegType) string {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return "string"
	case types.REG_MULTI_SZ:
		return "multi"
	case types.REG_DWORD, types.REG_DWORD_BE:
		return "dword"
	default:
		return "raw"
	}
}

func runGet(args []string) error {
	keyPath := args[0]
	valueName := args[1]

	return withKey(keyPath, false, func(k *registry.Key) error {
		blob, err := k.ValueBlob(valueName)
		if err != nil {
			return report("get value", err)
		}
		as := getAs
		if as == "" {
			as = decoderFor(blob.Type)
		}

		var data any
		switch as {
		case "string":
			data, err = k.String(valueName)
		case "multi":
			data, err = k.Strings(valueName)
		case "dword":
			data, err = k.DWORD(valueName)
		case "raw":
			data = hex.EncodeToString(blob.Data)
		default:
			return fmt.Errorf("unknown decoder %q (want string, multi, dword or raw)", as)
		}
		if err != nil {
			return report("decode value", err)
		}

		if jsonOut {
			return printJSON(map[string]any{
				"path":  k.Path(),
				"name":  valueName,
				"type":  blob.Type.String(),
				"value": data,
			})
		}
		switch v := data.(type) {
		case []string:
			printInfo("%s\n", strings.Join(v, "\n"))
		case uint32:
			printInfo("%d (0x%08x)\n", v, v)
		default:
			printInfo("%v\n", v)
		}
		return nil
	})
}
