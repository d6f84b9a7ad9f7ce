package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/stock"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var addName string

var addCmd = &cobra.Command{
	Use:   "add <stock-notetype>",
	Short: "Add a stock notetype to the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nt := stock.ByName(args[0])
		if nt == nil {
			available := make([]string, 0, len(stock.All()))
			for _, s := range stock.All() {
				available = append(available, s.Name)
			}
			return fmt.Errorf("unknown stock notetype %q (available: %s)",
				args[0], strings.Join(available, ", "))
		}
		if addName != "" {
			nt.Name = addName
		}

		col, err := openCollection()
		if err != nil {
			return err
		}
		defer col.Close()

		if err := col.AddNotetype(nt); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Added notetype %s (id %d)", ui.Name(nt.Name), nt.ID))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "name for the new notetype")
	rootCmd.AddCommand(addCmd)
}
