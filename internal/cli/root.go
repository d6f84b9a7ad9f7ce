// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckhand-cli/deckhand/internal/collection"
	"github.com/deckhand-cli/deckhand/internal/config"
	"github.com/deckhand-cli/deckhand/internal/ui"
)

var (
	// Global flags
	configPathFlag string
	collectionFlag string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dkh",
	Short: "Deckhand - a flashcard collection manager",
	Long: `Deckhand manages the note types of a flashcard collection: the fields each
kind of note carries and the card templates derived from them. Schema edits
are validated and propagated into dependent templates before anything is
persisted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPathFlag != "" {
			cfg, err = config.LoadFrom(configPathFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&collectionFlag, "collection", "C", "", "path to collection database")
}

// collectionPath resolves the collection database location: flag, then
// config, then the default.
func collectionPath() string {
	if collectionFlag != "" {
		return collectionFlag
	}
	return cfg.CollectionPath()
}

// openCollection opens the configured collection, refusing to create one
// implicitly.
func openCollection() (*collection.Collection, error) {
	path := collectionPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no collection at %s\n\nRun 'dkh init' to create one", path)
	}
	col, err := collection.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	col.NormalizeText = cfg.NormalizeTextEnabled()
	return col, nil
}
