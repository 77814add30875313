package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/hoomehr/perxplor/internal/storage"
	"github.com/hoomehr/perxplor/internal/treasure"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress <identity>",
	Short: "Show saved progress for an identity",
	Long: `Display an identity's saved score and collection, or wipe it.

Examples:
  perxplor progress ada
  perxplor progress ada --reset`,
	Args: cobra.ExactArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the identity's saved progress")
}

func runProgress(cmd *cobra.Command, args []string) {
	identity := args[0]

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if err := store.Reset(identity); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %s cleared.\n", identity)
		return
	}

	snap, err := store.Load(identity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading progress: %v\n", err)
		os.Exit(1)
	}
	if snap == nil {
		fmt.Printf("No saved progress for %s.\n", identity)
		fmt.Printf("Start with 'perxplor play --identity %s'.\n", identity)
		return
	}

	// The catalog fills in names and rarities; ids from an older catalog
	// still list, just without them.
	catalog, err := treasure.Load("")
	if err != nil {
		catalog = nil
	}

	fmt.Printf("Progress - %s\n\n", identity)
	fmt.Printf("Score: %d\n", snap.Score)
	fmt.Printf("Collected: %d", len(snap.Collected))
	if catalog != nil {
		fmt.Printf(" of %d", catalog.Len())
	}
	fmt.Println()

	if len(snap.Collected) == 0 && len(snap.Opened) == 0 {
		return
	}

	rows := make([]table.Row, 0, len(snap.Collected)+len(snap.Opened))
	for _, id := range snap.Collected {
		rows = append(rows, progressRow(catalog, id, "collected"))
	}
	for _, id := range snap.Opened {
		rows = append(rows, progressRow(catalog, id, "opened"))
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Treasure", Width: 24},
			{Title: "Rarity", Width: 10},
			{Title: "Worth", Width: 6},
			{Title: "State", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	fmt.Println()
	fmt.Println(t.View())
}

// progressRow builds one table row for a saved treasure id.
func progressRow(catalog *treasure.Catalog, id, state string) table.Row {
	if catalog != nil {
		if tr, ok := catalog.ByID(id); ok {
			return table.Row{
				tr.Name,
				string(tr.Rarity),
				fmt.Sprintf("%d", tr.Rarity.Value()),
				state,
			}
		}
	}
	return table.Row{id, "?", "?", state}
}
