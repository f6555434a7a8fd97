package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game and layout picker",
	Long: `Start the arcade in interactive menu mode.

Pick a game with Up/Down and a board layout with Left/Right, then press
Enter. Pausing a game (P) or finishing it and pressing B returns to the
menu.

Controls:
  Up/Down/j/k     - Choose game
  Left/Right/h/l  - Choose layout
  Enter/Space     - Play
  Tab             - Scoreboard
  Q               - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --layout bunkers --difficulty hard`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig()
	layoutID := flagLayout

	applyGameFlags()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, flagLayoutDir, layoutID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		layoutID = menuResult.LayoutID

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		log.Debug("starting game", "game", menuResult.GameID, "layout", layoutID)

		backToMenu, err := tui.Run(game, store, cfg, tui.GameOptions{
			LayoutID:  layoutID,
			AllowBack: true,
			Clipboard: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
