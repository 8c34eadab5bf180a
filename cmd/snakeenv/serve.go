package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-env/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeEnv    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH play server",
	Long: `Start an SSH server that lets users connect and play the environment.

Each SSH connection gets its own environment instance. Unless --seed or the
config sets one, every session gets its own time-based seed. Finished
episodes are stored in the shared episode database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake-env/host_key

Examples:
  snakeenv serve                           # Listen on :23234 with auto-generated key
  snakeenv serve --ssh :2222               # Listen on port 2222
  snakeenv serve --env snake_custom --preset custom

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeEnv, "env", "snake", "Environment served to each session")
}

func runServe(_ *cobra.Command, _ []string) {
	envID := envArg([]string{flagServeEnv})

	env, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		EnvID:       envID,
		Env:         env,
	}

	server, err := tui.NewSSHServer(cfg, newLogger("snake-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting snake SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
