package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-env/internal/gym"
	"github.com/vovakirdan/snake-env/internal/platform/tui"
	"github.com/vovakirdan/snake-env/internal/storage"
)

var flagFPS int

var playCmd = &cobra.Command{
	Use:   "play [env]",
	Short: "Play an environment in the terminal",
	Long: `Play the snake environment interactively (the human render mode).

Controls:
  Arrows/WASD/HJKL - Turn (reversals are ignored)
  P/Space/Esc      - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a PNG screenshot to ~/.snake-env/screenshots
  Q/Ctrl+C         - Quit

Examples:
  snakeenv play
  snakeenv play snake_custom --preset custom
  snakeenv play --preset large --fps 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Moves per second (0 = config play.tick_rate)")
}

func runPlay(cmd *cobra.Command, args []string) {
	envID := envArg(args)

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagFPS > 0 {
		cfg.Play.TickRate = flagFPS
	}

	env, err := gym.Create(envID, cfg)
	if err != nil {
		fail("%v", err)
	}

	// Refuse to start if the board cannot fit the terminal
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		obs, obsErr := env.Reset()
		if obsErr != nil {
			fail("%v", obsErr)
		}
		needW, needH := tui.ViewSize(obs)
		if w < needW || h < needH {
			fail("terminal is %dx%d, the board needs %dx%d", w, h, needW, needH)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open episode database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(env, store, cfg.Play.TickRate)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running env: %v", runErr)
	}
}
