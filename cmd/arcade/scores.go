package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagScoresLayout string
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game (default: invaders),
with the wave reached and the layout played.

Examples:
  arcade scores
  arcade scores invaders_single
  arcade scores invaders --layout mini --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresLayout, "layout", "", "Only show scores for this layout")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "invaders"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if flagScoresLayout != "" {
		scores, err = store.TopScoresForLayout(gameID, flagScoresLayout, flagScoresLimit)
		title += " / " + flagScoresLayout
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-4s  %-12s  %s\n", "Rank", "Score", "Wave", "Layout", "Date")
	fmt.Printf("  %-4s  %-10s  %-4s  %-12s  %s\n", "----", "-----", "----", "------", "----")
	for i, entry := range scores {
		layout := entry.Layout
		if layout == "" {
			layout = "default"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-4d  %-12s  %s\n", i+1, entry.Score, entry.Wave, layout, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  |  Best: %d  |  Best wave: %d  |  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestWave, stats.AvgScore)
	}
}
