package invaders

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/engine"
)

// Glyphs drawn for board contents.
const (
	glyphPlayer     = '^'
	glyphPlayerDead = '*'
	glyphAlien      = '@'
	glyphShot       = '|'
	glyphBarrier    = '#'
	glyphBonus      = '*'
	glyphEmpty      = '.'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, resize to continue", g.eng.Width(), g.eng.Height()+hudHeight))
		return
	}

	board := g.boardRect()
	for p := range g.eng.Positions() {
		r, c := g.glyphAt(p)
		dst.SetColored(board.X+p.Col, board.Y+p.Row, r, c)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "YOU WIN!", fmt.Sprintf("Score: %d  |  Press R to restart", g.eng.Score()))
	case g.eng.Status() == engine.StatusOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.eng.Score()))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to resume")
	}
}

// boardRect places the board centered below the HUD.
func (g *Game) boardRect() core.Rect {
	r := core.CenterRect(g.eng.Width(), g.eng.Height(), g.screenW, g.screenH-hudHeight)
	r.Y += hudHeight
	return r
}

// glyphAt picks what to draw for one board cell. The player wins over shots,
// shots over aliens and aliens over terrain.
func (g *Game) glyphAt(p engine.Position) (rune, core.Color) {
	if g.eng.IsPlayerAt(p) {
		if g.eng.Status() == engine.StatusOver {
			return glyphPlayerDead, core.ColorYellow
		}
		return glyphPlayer, core.ColorBrightYellow
	}
	if owner, ok := g.eng.ShotOwnerAt(p); ok {
		if owner == engine.OwnerEnemy {
			return glyphShot, core.ColorRed
		}
		return glyphShot, core.ColorYellow
	}
	if _, ok := g.eng.LivingAlienAt(p); ok {
		return glyphAlien, core.ColorGreen
	}
	switch g.eng.Cell(p) {
	case engine.CellBarrier:
		return glyphBarrier, core.ColorBlue
	case engine.CellBonus:
		return glyphBonus, core.ColorCyan
	default:
		return glyphEmpty, core.ColorGray
	}
}

// renderHUD draws the status line.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.eng.Score()))
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightGreen)

	right := fmt.Sprintf("Wave: %d  Aliens: %d", g.eng.Wave(), g.eng.LivingAliens())
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	box := core.CenterRect(boxW, 5, dst.Width(), dst.Height())

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(box.X+(boxW-utf8.RuneCountInString(title))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-utf8.RuneCountInString(subtitle))/2, box.Y+3, subtitle)
}
