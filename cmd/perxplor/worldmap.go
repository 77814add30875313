package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hoomehr/perxplor/internal/core"
	"github.com/hoomehr/perxplor/internal/terrain"
)

var (
	flagMapSize int
	flagMapSeed int64
)

var worldmapCmd = &cobra.Command{
	Use:   "worldmap",
	Short: "Print a terrain preview",
	Long: `Render a downsampled preview of the whole world grid to stdout.
Useful for eyeballing a seed before playing it.

Examples:
  perxplor worldmap
  perxplor worldmap --size 80 --seed 99`,
	Run: runWorldmap,
}

func init() {
	worldmapCmd.Flags().IntVar(&flagMapSize, "size", 60, "Preview width in columns")
	worldmapCmd.Flags().Int64Var(&flagMapSeed, "seed", 0, "World seed (0 = use settings)")
}

func runWorldmap(cmd *cobra.Command, args []string) {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	seed := settings.Game.Seed
	if flagMapSeed != 0 {
		seed = flagMapSeed
	}

	size := core.Clamp(flagMapSize, 10, core.GridSize)
	gen := terrain.New(seed)

	// Terminal cells are about twice as tall as wide, so sample half as
	// many rows as columns to keep the map square-ish.
	rows := core.Max(1, size/2)

	styles := make(map[core.Color]lipgloss.Style)
	var sb strings.Builder
	for ry := 0; ry < rows; ry++ {
		for rx := 0; rx < size; rx++ {
			x := rx * core.GridSize / size
			y := ry * core.GridSize / rows
			c := gen.ColorOf(x, y, core.ZoomWorld, 0)
			st, ok := styles[c]
			if !ok {
				st = lipgloss.NewStyle().Background(lipgloss.Color(string(c)))
				styles[c] = st
			}
			sb.WriteString(st.Render(" "))
		}
		sb.WriteRune('\n')
	}

	fmt.Printf("World seed %d\n\n", seed)
	fmt.Print(sb.String())
}
