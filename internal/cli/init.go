package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/collection"
	"github.com/deckhand-cli/deckhand/internal/stock"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new collection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := collectionPath()
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("collection already exists at %s", path)
		}

		col, err := collection.Open(path)
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		defer col.Close()

		seeded := stock.All()
		for _, nt := range seeded {
			if err := col.AddNotetype(nt); err != nil {
				return fmt.Errorf("failed to add notetype %q: %w", nt.Name, err)
			}
		}
		if err := col.Store().SetCurrentNotetypeID(seeded[0].ID); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Created collection at %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
