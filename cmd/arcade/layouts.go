package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layouts"
)

var flagListDir string

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List board layouts",
	Long: `Shows the built-in board layouts followed by the user layouts found in
--layouts-dir. A user layout is a YAML file:

  id: fortress
  name: Fortress
  formation_cols: 3
  board: |
    .@.@.@.
    .......
    ##.#.##
    ...^...

Cells: '.' empty, '@' alien, '^' player, '#' barrier, '*' bonus.`,
	Run: runLayouts,
}

func init() {
	layoutsCmd.Flags().StringVar(&flagListDir, "layouts-dir", layouts.DefaultUserDir(), "Directory of user layout YAML files")
}

func runLayouts(_ *cobra.Command, _ []string) {
	catalog, err := layouts.Catalog(flagListDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", flagListDir, err)
	}

	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range catalog {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Println("Available layouts:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Source")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "------")
	for _, l := range catalog {
		w, h := l.Size()
		source := "builtin"
		if !l.Builtin {
			source = l.FilePath
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, fmt.Sprintf("%dx%d", w, h), source)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play --layout <id>' to play on a layout.")
}
