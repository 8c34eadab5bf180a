// snakeenv runs the snake environment: interactive play, batch rollouts,
// replays, stored episodes and the SSH and HTTP front ends.
//
// Usage:
//
//	snakeenv list              - List registered environments
//	snakeenv play [env]        - Play in the terminal
//	snakeenv run [env]         - Roll out episodes with a built-in policy
//	snakeenv replay <file>     - Re-simulate a saved replay
//	snakeenv episodes [env]    - Show the best stored episodes
//	snakeenv serve             - Start SSH server for remote play
//	snakeenv api               - Start the HTTP/websocket API
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible episodes
//	--db <dsn>       - Episode database (sqlite path or postgres:// DSN)
//	--config <path>  - Environment config YAML
//	--preset <name>  - small, classic, large or custom
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-env/internal/config"
	// Register environments
	_ "github.com/vovakirdan/snake-env/internal/gym"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPreset string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeenv",
	Short: "Snake environment - step-based snake for agents and humans",
	Long: `snakeenv runs a deterministic single-agent snake environment on a walled
grid. Agents drive it through reset/step/render; humans can play it in the
terminal or over SSH.

Examples:
  snakeenv list
  snakeenv play
  snakeenv run --episodes 100 --policy random
  snakeenv replay ./replays/episode-0001.yaml --frames ./frames
  snakeenv episodes snake --tui
  snakeenv api --addr :8080`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake-env/episodes.db", "Episode database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to environment config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Preset: small, classic, large, custom")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// loadConfig resolves the environment config from the global flags.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, cfg.Validate()
}

// newLogger returns the charm logger used by the long-running commands.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// envArg returns the env ID argument or the default, exiting if unknown.
func envArg(args []string) string {
	id := "snake"
	if len(args) > 0 {
		id = args[0]
	}
	if !registryExists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown env %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'snakeenv list' to see available environments.")
		os.Exit(1)
	}
	return id
}
