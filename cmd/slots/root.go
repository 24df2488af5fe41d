package slots

import (
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/vrpstate/cmd/util"
	"github.com/ValentinKolb/vrpstate/lib/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SlotsCmd prints the slot table of a fresh state manager
var SlotsCmd = &cobra.Command{
	Use:   "slots [name...]",
	Short: "Print the state slot table",
	Long: `Print the state slot table of a fresh state manager: the built-in slots followed by
the given names registered as user slots, in the order they are given.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return printSlots(os.Stdout, args, viper.GetString("format"))
	},
}

func init() {
	key := "format"
	SlotsCmd.Flags().String(key, "table", util.WrapString("Output format (table, yaml)"))
}

type slotEntry struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name"`
	Builtin bool   `yaml:"builtin"`
}

// printSlots registers names in a new registry and writes the resulting slot table to w
func printSlots(w io.Writer, names []string, format string) error {
	registry := state.NewRegistry()
	for _, name := range names {
		registry.CreateOrGet(name)
	}

	ids := registry.Ids()
	entries := make([]slotEntry, len(ids))
	for i, id := range ids {
		entries[i] = slotEntry{
			Index:   id.Index(),
			Name:    id.Name(),
			Builtin: id.Index() < state.FirstUserIndex,
		}
	}

	switch format {
	case "table":
		fmt.Fprintf(w, "%-6s%-32s%s\n", "index", "name", "kind")
		for _, e := range entries {
			kind := "user"
			if e.Builtin {
				kind = "builtin"
			}
			fmt.Fprintf(w, "%-6d%-32s%s\n", e.Index, e.Name, kind)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid format %s (expected table or yaml)", format)
	}
}
