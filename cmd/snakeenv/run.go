package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-env/internal/gym"
	"github.com/vovakirdan/snake-env/internal/storage"
)

var (
	flagEpisodes  int
	flagPolicy    string
	flagReplayDir string
	flagNoStore   bool
)

var runCmd = &cobra.Command{
	Use:   "run [env]",
	Short: "Roll out episodes with a built-in policy",
	Long: `Run episodes without a display, logging one line per episode.

Policies:
  random   - uniform over the four directions
  straight - keep the current heading

Finished episodes are stored in the episode database unless --no-store
is given. With --replay-dir every episode is also written as a replay file.

Examples:
  snakeenv run --episodes 50
  snakeenv run snake_custom --preset custom --policy straight
  snakeenv run --seed 7 --replay-dir ./replays`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVarP(&flagEpisodes, "episodes", "n", 10, "Number of episodes")
	runCmd.Flags().StringVar(&flagPolicy, "policy", "random", "Policy: random, straight")
	runCmd.Flags().StringVar(&flagReplayDir, "replay-dir", "", "Write a replay file per episode into this directory")
	runCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not save episodes to the database")
}

func runRun(cmd *cobra.Command, args []string) {
	envID := envArg(args)
	logger := newLogger("snake-run")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagEpisodes < 1 {
		fail("--episodes must be at least 1")
	}

	env, err := gym.Create(envID, cfg)
	if err != nil {
		fail("%v", err)
	}
	defer env.Close()

	policy, err := gym.NewPolicy(flagPolicy, cfg.Seed)
	if err != nil {
		fail("%v", err)
	}

	var store *storage.Store
	if !flagNoStore {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open episode database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	if flagReplayDir != "" {
		if err := os.MkdirAll(flagReplayDir, 0o755); err != nil {
			fail("cannot create replay directory: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var best gym.Stats
	var total float64
	done := 0
	for i := range flagEpisodes {
		rec, err := gym.RunEpisode(ctx, env, policy, nil)
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "completed", done)
			break
		}
		if err != nil && rec == nil {
			logger.Error("episode failed", "episode", i+1, "error", err)
			continue
		}
		if err != nil {
			logger.Warn("episode ended early", "episode", i+1, "error", err)
		}
		done++

		stats := rec.Final
		total += stats.TotalReward
		if done == 1 || stats.TotalReward > best.TotalReward {
			best = stats
		}

		var id string
		if store != nil {
			id, err = store.SaveEpisode(storage.Episode{
				EnvID:       envID,
				Seed:        rec.Seed,
				Steps:       stats.Steps,
				Length:      stats.Length,
				FoodEaten:   stats.FoodEaten,
				TotalReward: stats.TotalReward,
				DeathCause:  stats.DeathCause,
				Actions:     rec.Actions,
			})
			if err != nil {
				logger.Warn("episode not saved", "error", err)
			}
		}
		if flagReplayDir != "" {
			path := filepath.Join(flagReplayDir, fmt.Sprintf("episode-%04d.yaml", i+1))
			if err := rec.Save(path); err != nil {
				logger.Warn("replay not written", "path", path, "error", err)
			}
		}

		logger.Info("episode",
			"n", i+1,
			"steps", stats.Steps,
			"length", stats.Length,
			"food", stats.FoodEaten,
			"reward", stats.TotalReward,
			"death", stats.DeathCause,
			"id", id,
		)
	}

	if done > 0 {
		logger.Info("summary",
			"episodes", done,
			"mean_reward", total/float64(done),
			"best_reward", best.TotalReward,
			"best_length", best.Length,
		)
	}
}
