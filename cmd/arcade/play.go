package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layouts"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLayout     string
	flagLayoutDir  string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game. Without an argument plays "invaders",
which advances to a new wave each time the formation is cleared.
"invaders_single" ends with a win after one screen.

Controls:
  Left/Right, A/D, H/L  - Move
  Space/Up/W            - Fire
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Screenshot (file and clipboard)
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Formation starts slow, speeds up to max
  normal - Starts at 30% difficulty, progresses to max
  hard   - Starts at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial speed

Layouts:
  Built-in: classic, mini, bunkers. User layouts are YAML files read from
  --layouts-dir (default ~/.arcade/layouts). See 'arcade layouts'.

Examples:
  arcade play
  arcade play invaders --difficulty hard
  arcade play invaders_single --layout mini
  arcade play --layout fortress --layouts-dir ./layouts
  arcade play --config ./my-invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that tune game creation.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLayout, "layout", layouts.DefaultID, "Board layout ID")
	cmd.Flags().StringVar(&flagLayoutDir, "layouts-dir", layouts.DefaultUserDir(), "Directory of user layout YAML files")
}

// applyGameFlags hands the flag values to the game packages before creation.
func applyGameFlags() {
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(flagDifficulty)
	invaders.SetLayout(flagLayout)
	invaders.SetLayoutDir(flagLayoutDir)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "invaders"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if _, err := layouts.Resolve(flagLayout, flagLayoutDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcade layouts' to see available layouts.")
		os.Exit(1)
	}

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.GameOptions{
		LayoutID:  flagLayout,
		Clipboard: true,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
