package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-env/internal/platform/tui"
	"github.com/vovakirdan/snake-env/internal/storage"
)

var (
	flagLimit int
	flagTUI   bool
	flagClear bool
)

var episodesCmd = &cobra.Command{
	Use:   "episodes [env]",
	Short: "Show the best stored episodes",
	Long: `Display stored episodes ranked by total reward, then length, then fewest
steps.

Examples:
  snakeenv episodes
  snakeenv episodes snake_custom --limit 20
  snakeenv episodes --tui
  snakeenv episodes snake --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEpisodes,
}

func init() {
	episodesCmd.Flags().IntVarP(&flagLimit, "limit", "l", 10, "Number of episodes to show")
	episodesCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse episodes in an interactive table")
	episodesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored episodes for the env")
}

func runEpisodes(cmd *cobra.Command, args []string) {
	envID := envArg(args)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearEpisodes(envID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared episodes for %s.\n", envID)
		return
	}

	if flagTUI {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		if err := tui.RunEpisodeBrowser(store, envID, w, h); err != nil {
			fail("%v", err)
		}
		return
	}

	episodes, err := store.TopEpisodes(envID, flagLimit)
	if err != nil {
		fail("fetching episodes: %v", err)
	}

	if len(episodes) == 0 {
		fmt.Printf("No episodes for %s yet.\n", envID)
		return
	}

	fmt.Printf("Top episodes for %s:\n\n", envID)
	fmt.Printf("  %-4s  %8s  %6s  %6s  %5s  %-7s  %-16s  %s\n",
		"Rank", "Reward", "Length", "Steps", "Food", "Death", "Date", "ID")
	for i, e := range episodes {
		death := e.DeathCause
		if death == "" {
			death = "-"
		}
		fmt.Printf("  %-4d  %8.1f  %6d  %6d  %5d  %-7s  %-16s  %s\n",
			i+1, e.TotalReward, e.Length, e.Steps, e.FoodEaten, death,
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.ID)
	}

	stats, err := store.EnvStats(envID)
	if err != nil {
		fail("fetching stats: %v", err)
	}
	if stats != nil {
		fmt.Printf("\n%d episodes, best %.1f, mean %.2f, longest snake %d\n",
			stats.Episodes, stats.BestReward, stats.AvgReward, stats.MaxLength)
	}
}
