package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoomehr/perxplor/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeCat    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exploration sessions over SSH",
	Long: `Start an SSH server that lets players connect and explore.

The SSH username is the player identity: connecting again with the same
name continues the same saved progress. All identities share one world
and one progress database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.perxplor/host_key

Examples:
  perxplor serve                           # Listen on :23234
  perxplor serve --ssh :2222               # Listen on port 2222
  perxplor serve --host-key ./my_host_key  # Use specific host key
  perxplor serve --db ./progress.db        # Use specific database

Players connect with:
  ssh ada@localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeCat, "catalog", "", "Path to custom treasure catalog YAML")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		ConfigPath:  flagConfig,
		CatalogPath: flagServeCat,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting perxplor SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh <your-name>@localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
