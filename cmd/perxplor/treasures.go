package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/hoomehr/perxplor/internal/treasure"
)

var flagListCatalog string

var treasuresCmd = &cobra.Command{
	Use:   "treasures",
	Short: "List the treasure catalog",
	Long: `Print every treasure in the catalog with its glyph, rarity, worth and
position.

Examples:
  perxplor treasures
  perxplor treasures --catalog ./my-treasures.yaml`,
	Run: runTreasures,
}

func init() {
	treasuresCmd.Flags().StringVar(&flagListCatalog, "catalog", "", "Path to custom treasure catalog YAML")
}

func runTreasures(cmd *cobra.Command, args []string) {
	catalog, err := treasure.Load(flagListCatalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	all := catalog.All()
	rows := make([]table.Row, 0, len(all))
	for _, tr := range all {
		rows = append(rows, table.Row{
			tr.Glyph,
			tr.Name,
			string(tr.Rarity),
			fmt.Sprintf("%d", tr.Rarity.Value()),
			fmt.Sprintf("(%d, %d)", tr.X, tr.Y),
			tr.Biome,
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 2},
			{Title: "Name", Width: 24},
			{Title: "Rarity", Width: 10},
			{Title: "Worth", Width: 6},
			{Title: "Position", Width: 12},
			{Title: "Biome", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	fmt.Printf("Treasure catalog - %d entries\n\n", catalog.Len())
	fmt.Println(t.View())
}
