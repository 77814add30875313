package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hoomehr/perxplor/internal/config"
	"github.com/hoomehr/perxplor/internal/game"
	"github.com/hoomehr/perxplor/internal/platform/tui"
	"github.com/hoomehr/perxplor/internal/storage"
	"github.com/hoomehr/perxplor/internal/treasure"
)

var (
	flagIdentity string
	flagCatalog  string
	flagPolicy   string
	flagSeed     int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore the world locally",
	Long: `Start a local exploration session.

Controls:
  Arrows/WASD - Move one tile
  Mouse click - Step toward the clicked tile (and inspect it up close)
  + / -       - Zoom in / out
  i           - Inspect the treasure under you
  Enter       - Collect (confirm policy)
  Esc         - Close the treasure card
  Q/Ctrl+C    - Quit

Collect policy:
  auto    - Stepping onto a treasure collects it
  confirm - Stepping onto a treasure opens its card; Enter collects

Examples:
  perxplor play --identity ada
  perxplor play --identity ada --policy confirm
  perxplor play --identity ada --catalog ./my-treasures.yaml
  perxplor play --identity ada --seed 99`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagIdentity, "identity", "", "Player identity (defaults to $USER)")
	playCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to custom treasure catalog YAML")
	playCmd.Flags().StringVar(&flagPolicy, "policy", "", "Collect policy: auto or confirm (overrides settings)")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = use settings)")
}

// loadSettings loads settings and folds the global and play flags in.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return settings, err
	}
	if flagDBPath != "" {
		settings.Storage.Path = flagDBPath
	}
	return settings, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	identity := flagIdentity
	if identity == "" {
		identity = os.Getenv("USER")
	}
	if identity == "" {
		fmt.Fprintln(os.Stderr, "Error: no identity; pass --identity or set $USER")
		os.Exit(1)
	}

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPolicy != "" {
		settings.Game.Policy = flagPolicy
	}
	if flagSeed != 0 {
		settings.Game.Seed = flagSeed
	}

	catalog, err := treasure.Load(flagCatalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early; the model re-sizes on the first frame too
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "perxplor"})

	// Open progress storage; the session still works without it
	var store game.Store
	sqlStore, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
	} else {
		store = sqlStore
		defer sqlStore.Close()
	}

	engine, err := tui.NewSession(settings, catalog, store, identity, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(engine, settings.Animation.FPS, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
		os.Exit(1)
	}
}
