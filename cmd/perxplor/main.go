// perxplor is a terminal treasure-exploration game on a procedurally
// colored 500x500 world grid.
//
// Usage:
//
//	perxplor play                - Explore locally
//	perxplor serve               - Serve sessions over SSH
//	perxplor progress <identity> - Show (or reset) saved progress
//	perxplor treasures           - List the treasure catalog
//	perxplor worldmap            - Print a terrain preview
//
// Global flags:
//
//	--config <path>  - Settings file (default: search order, then embedded)
//	--db <path>      - Progress database path (overrides settings)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "perxplor",
	Short: "Explore a procedural world and collect its treasures",
	Long: `perxplor renders a fixed 500x500 world grid in your terminal: biomes are
procedurally colored, a zoom engine moves between whole-world and
single-tile views, and a seeded catalog scatters treasures to find.
Progress (score and collection) is saved per identity.

Available commands:
  play      - Explore locally
  serve     - Serve sessions over SSH (the SSH username is the identity)
  progress  - Show or reset saved progress for an identity
  treasures - List the treasure catalog
  worldmap  - Print a downsampled terrain preview

Examples:
  perxplor play --identity ada
  perxplor play --identity ada --policy confirm
  perxplor serve --ssh :2222
  perxplor progress ada
  perxplor treasures
  perxplor worldmap --size 60 --seed 7`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides settings)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(treasuresCmd)
	rootCmd.AddCommand(worldmapCmd)
}
