package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deckhand-cli/deckhand/internal/atomicfile"
	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

// notetypeYAML is the interchange form used by export and import.
type notetypeYAML struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	SortField string         `yaml:"sort_field,omitempty"`
	CSS       string         `yaml:"css,omitempty"`
	Fields    []fieldYAML    `yaml:"fields"`
	Templates []templateYAML `yaml:"templates"`
}

type fieldYAML struct {
	Name     string `yaml:"name"`
	Sticky   bool   `yaml:"sticky,omitempty"`
	RTL      bool   `yaml:"rtl,omitempty"`
	Font     string `yaml:"font,omitempty"`
	FontSize uint32 `yaml:"font_size,omitempty"`
}

type templateYAML struct {
	Name  string `yaml:"name"`
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <notetype>",
	Short: "Export a notetype definition as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := openCollection()
		if err != nil {
			return err
		}
		defer col.Close()

		nt, err := resolveNotetype(col, args[0])
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(notetypeToYAML(nt))
		if err != nil {
			return fmt.Errorf("failed to encode notetype: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := atomicfile.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintln(os.Stderr, ui.Successf("Exported %s to %s", ui.Name(nt.Name), exportOutput))
		return nil
	},
}

func notetypeToYAML(nt *notetype.Notetype) *notetypeYAML {
	out := &notetypeYAML{
		Name: nt.Name,
		Kind: kindLabel(nt.Config.Kind),
		CSS:  nt.Config.CSS,
	}
	if int(nt.Config.SortFieldIdx) < len(nt.Fields) {
		out.SortField = nt.Fields[nt.Config.SortFieldIdx].Name
	}
	for _, f := range nt.Fields {
		out.Fields = append(out.Fields, fieldYAML{
			Name:     f.Name,
			Sticky:   f.Config.Sticky,
			RTL:      f.Config.RTL,
			Font:     f.Config.Font,
			FontSize: f.Config.FontSize,
		})
	}
	for _, t := range nt.Templates {
		out.Templates = append(out.Templates, templateYAML{
			Name:  t.Name,
			Front: t.Config.QuestionFormat,
			Back:  t.Config.AnswerFormat,
		})
	}
	return out
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
