// Package tui provides the Bubble Tea integration for the arcade: the game
// loop, input mapping, the game and layout picker, the scoreboard and the
// SSH server that hosts one session per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// defaultTickRate is used when the configured rate is not positive.
const defaultTickRate = 60

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
