package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a notetype definition from YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var def notetypeYAML
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		nt, err := notetypeFromYAML(&def)
		if err != nil {
			return err
		}

		col, err := openCollection()
		if err != nil {
			return err
		}
		defer col.Close()

		if err := col.AddNotetype(nt); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Imported notetype %s (id %d)", ui.Name(nt.Name), nt.ID))
		return nil
	},
}

func notetypeFromYAML(def *notetypeYAML) (*notetype.Notetype, error) {
	nt := notetype.New(def.Name)
	switch def.Kind {
	case "", "standard":
	case "cloze":
		nt.Config.Kind = notetype.KindCloze
	default:
		return nil, fmt.Errorf("unknown notetype kind %q", def.Kind)
	}
	if def.CSS != "" {
		nt.Config.CSS = def.CSS
	}

	for _, f := range def.Fields {
		field := notetype.NewField(f.Name)
		field.Config.Sticky = f.Sticky
		field.Config.RTL = f.RTL
		if f.Font != "" {
			field.Config.Font = f.Font
		}
		if f.FontSize != 0 {
			field.Config.FontSize = f.FontSize
		}
		nt.Fields = append(nt.Fields, field)
	}
	for _, t := range def.Templates {
		nt.AddTemplate(t.Name, t.Front, t.Back)
	}

	if def.SortField != "" {
		ord, ok := nt.GetFieldOrd(def.SortField)
		if !ok {
			return nil, fmt.Errorf("sort_field %q does not name a field", def.SortField)
		}
		nt.Config.SortFieldIdx = ord
	}
	return nt, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
