package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/ui"
)

var renameFieldCmd = &cobra.Command{
	Use:   "rename-field <notetype> <old-name> <new-name>",
	Short: "Rename a field, rewriting references in templates",
	Args:  cobra.ExactArgs(3),
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

		ord, ok := nt.GetFieldOrd(args[1])
		if !ok {
			return fmt.Errorf("notetype %q has no field named %q", nt.Name, args[1])
		}

		updated := nt.Clone()
		updated.Fields[ord].Name = args[2]
		if err := col.UpdateNotetype(updated, false); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Renamed field %s to %s in %s",
			ui.Name(args[1]), ui.Name(updated.Fields[ord].Name), ui.Name(nt.Name)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameFieldCmd)
}
