package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/ui"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <notetype>",
	Aliases: []string{"rm"},
	Short:   "Remove a notetype and its notes",
	Args:    cobra.ExactArgs(1),
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

		count, err := col.Store().NoteCount(nt.ID)
		if err != nil {
			return err
		}

		if !removeForce && ui.InteractiveOutput() {
			fmt.Printf("Remove notetype %s and its %d note(s)? [y/N] ", ui.Name(nt.Name), count)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := col.RemoveNotetype(nt.ID); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Removed notetype %s (%d note(s) deleted)", ui.Name(nt.Name), count))
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)
}
