package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

var (
	setType      string
	setCreateKey bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "sz", "Value type (sz, expand_sz, multi_sz, dword, dword_be, qword, binary)")
	cmd.Flags().BoolVar(&setCreateKey, "create-key", false, "Create key if it doesn't exist")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <name> <value>...",
		Short: "Set a registry value",
		Long: `The set command writes a value. multi_sz takes one argument per string;
binary takes hex; dword and qword accept decimal or 0x-prefixed hex.

Example:
  regctl set "Software/Vendor" "Version" "1.0.0"
  regctl set "Software/Vendor" "Enabled" 1 --type dword
  regctl set "Software/Vendor" "Paths" C:\\a C:\\b --type multi_sz
  regctl set "Software/NewApp" "Data" 0102ff --type binary --create-key`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	keyPath := args[0]
	valueName := args[1]
	values := args[2:]

	typ, err := types.ParseRegType(setType)
	if err != nil {
		return err
	}
	if typ != types.REG_MULTI_SZ && len(values) != 1 {
		return fmt.Errorf("%s takes exactly one value, got %d", typ, len(values))
	}

	err = withKey(keyPath, setCreateKey, func(k *registry.Key) error {
		return setValue(k, valueName, typ, values)
	})
	if err != nil {
		return report("set value", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":    store.JoinPath(keyPath),
			"name":    valueName,
			"type":    typ.String(),
			"success": true,
		})
	}
	printInfo("Set %s\\%s (%s)\n", keyPath, valueName, typ)
	return nil
}

func setValue(k *registry.Key, name string, typ types.RegType, values []string) error {
	switch typ {
	case types.REG_SZ:
		return k.SetString(name, values[0])
	case types.REG_MULTI_SZ:
		return k.SetStringArray(name, values)
	case types.REG_DWORD:
		v, err := strconv.ParseUint(values[0], 0, 32)
		if err != nil {
			return fmt.Errorf("parsing dword: %w", err)
		}
		return k.SetDWORD(name, uint32(v))
	}

	data, err := encodeRaw(typ, values[0])
	if err != nil {
		return err
	}
	return k.SetValue(name, typ, data)
}

// encodeRaw encodes the types without a typed setter.
func encodeRaw(typ types.RegType, s string) ([]byte, error) {
	switch typ {
	case types.REG_EXPAND_SZ, types.REG_LINK:
		return format.AppendUTF16LEZ(nil, s)
	case types.REG_DWORD_BE:
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing dword: %w", err)
		}
		return binary.BigEndian.AppendUint32(nil, uint32(v)), nil
	case types.REG_QWORD:
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing qword: %w", err)
		}
		return binary.LittleEndian.AppendUint64(nil, v), nil
	case types.REG_BINARY, types.REG_NONE:
		return hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	default:
		return nil, fmt.Errorf("setting %s values is not supported", typ)
	}
}
