package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/collection"
	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var showTemplates bool

var showCmd = &cobra.Command{
	Use:   "show <notetype>",
	Short: "Show a notetype's fields and templates",
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

		fmt.Printf("%s (%s, id %d)\n", ui.Name(nt.Name), kindLabel(nt.Config.Kind), nt.ID)
		fmt.Println()

		fmt.Println(ui.Header("Fields"))
		for i, f := range nt.Fields {
			marker := " "
			if uint32(i) == nt.Config.SortFieldIdx {
				marker = "*"
			}
			fmt.Printf("  %s %d  %s\n", marker, i, f.Name)
		}

		fmt.Println()
		fmt.Println(ui.Header("Templates"))
		for i, tmpl := range nt.Templates {
			fmt.Printf("    %d  %s  (%s)\n", i, tmpl.Name, requirementLabel(nt, i))
		}

		if showTemplates {
			for _, tmpl := range nt.Templates {
				fmt.Println()
				fmt.Println(ui.Header(tmpl.Name))
				fmt.Println("  front:")
				printIndented(tmpl.Config.QuestionFormat)
				fmt.Println("  back:")
				printIndented(tmpl.Config.AnswerFormat)
			}
		}
		return nil
	},
}

// resolveNotetype looks up a notetype by name, listing alternatives when the
// name is unknown.
func resolveNotetype(col *collection.Collection, name string) (*notetype.Notetype, error) {
	nt, err := col.GetNotetypeByName(name)
	if err != nil {
		return nil, err
	}
	if nt == nil {
		names, err := col.Store().AllNotetypeNames()
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "no notetype named %q", name)
		if len(names) > 0 {
			sb.WriteString("\n\nAvailable notetypes:")
			for _, n := range names {
				fmt.Fprintf(&sb, "\n  %s", n.Name)
			}
		}
		return nil, fmt.Errorf("%s", sb.String())
	}
	return nt, nil
}

// requirementLabel summarizes which fields a template's front depends on.
func requirementLabel(nt *notetype.Notetype, ord int) string {
	for _, req := range nt.Config.Requirements {
		if int(req.CardOrd) != ord {
			continue
		}
		switch req.Kind {
		case notetype.RequirementAny:
			return "needs any of: " + fieldNames(nt, req.FieldOrds)
		case notetype.RequirementAll:
			return "needs all of: " + fieldNames(nt, req.FieldOrds)
		default:
			return "never renders"
		}
	}
	return "no requirements"
}

func fieldNames(nt *notetype.Notetype, ords []uint32) string {
	names := make([]string, 0, len(ords))
	for _, ord := range ords {
		if int(ord) < len(nt.Fields) {
			names = append(names, nt.Fields[ord].Name)
		}
	}
	return strings.Join(names, ", ")
}

func printIndented(text string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Printf("    %s\n", line)
	}
}

func init() {
	showCmd.Flags().BoolVarP(&showTemplates, "templates", "t", false, "print full template formats")
	rootCmd.AddCommand(showCmd)
}
