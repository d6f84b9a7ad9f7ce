package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the notetypes in the collection",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := openCollection()
		if err != nil {
			return err
		}
		defer col.Close()

		notetypes, err := col.GetAllNotetypes()
		if err != nil {
			return err
		}

		table := ui.NewTable(6)
		table.AddRow("ID", "NAME", "KIND", "FIELDS", "TEMPLATES", "NOTES")
		for _, nt := range notetypes {
			count, err := col.Store().NoteCount(nt.ID)
			if err != nil {
				return err
			}
			table.AddRow(
				strconv.FormatInt(int64(nt.ID), 10),
				nt.Name,
				kindLabel(nt.Config.Kind),
				strconv.Itoa(len(nt.Fields)),
				strconv.Itoa(len(nt.Templates)),
				strconv.Itoa(count),
			)
		}
		fmt.Print(table.String())
		return nil
	},
}

func kindLabel(kind notetype.Kind) string {
	if kind == notetype.KindCloze {
		return "cloze"
	}
	return "standard"
}

func init() {
	rootCmd.AddCommand(listCmd)
}
