// arcade plays Space Invaders in the terminal, locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade layouts           - List built-in and user board layouts
//	arcade play [game]       - Play a game (default: invaders)
//	arcade menu              - Start menu to pick game and layout interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>    - Write logs to a file (default: discarded)
//	--log-level <level>  - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Invaders - Space Invaders in your terminal",
	Long: `TUI Invaders is a terminal Space Invaders: a formation of aliens marches
across the board, descends at the walls and fires back.

Available commands:
  list     - Show all available games
  layouts  - Show board layouts
  play     - Play a game directly
  menu     - Interactive game and layout picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play
  arcade play invaders_single --layout mini
  arcade menu
  arcade serve --ssh :2222
  arcade scores invaders --layout classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging points the default logger at --log-file. The TUI owns the
// terminal, so without a file logs are discarded.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	// serve runs headless and keeps logging to stderr.
	if flagLogFile == "" {
		if cmd.Name() != serveCmd.Name() {
			log.SetOutput(io.Discard)
		}
		return nil
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		log.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
