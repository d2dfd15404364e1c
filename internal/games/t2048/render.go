package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// tileColors maps tile values to display colors. Larger tiles fall back to
// ColorBrightMagenta.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorOrange,
	16:   core.ColorBrightRed,
	32:   core.ColorRed,
	64:   core.ColorMagenta,
	128:  core.ColorYellow,
	256:  core.ColorBrightYellow,
	512:  core.ColorGreen,
	1024: core.ColorBrightGreen,
	2048: core.ColorBrightCyan,
}

// TileColor returns the display color for a tile value.
func TileColor(v int) core.Color {
	if c, ok := tileColors[v]; ok {
		return c
	}
	return core.ColorBrightMagenta
}

func (g *Game) boardW() int { return g.variant.Size*cellWidth + 1 }
func (g *Game) boardH() int { return g.variant.Size*cellHeight + 1 }

func (g *Game) minWidth() int  { return g.boardW() + 2 }
func (g *Game) minHeight() int { return g.boardH() + hudHeight + 2 }

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - g.boardW()) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderStatus(dst, boardX, boardY+g.boardH())

	if g.session.State() == StateGameOver {
		area := core.NewRect(boardX, boardY, g.boardW(), g.boardH())
		drawOverlay(dst, area, "GAME OVER",
			fmt.Sprintf("Max tile: %d", g.session.Board().MaxTile()),
			"Press R to restart")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
}

// renderHUD draws the title and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := g.variant.Title
	dst.DrawTextColored(boardX+(g.boardW()-len(title))/2, 0, title, core.ColorBrightYellow)

	info := fmt.Sprintf("Max: %d", g.session.Board().MaxTile())
	dst.DrawText(boardX, 1, info)

	tiles := fmt.Sprintf("Tiles: %d/%d", g.session.Board().TileCount(), g.variant.Size*g.variant.Size)
	dst.DrawText(boardX+g.boardW()-len(tiles), 1, tiles)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.variant.Size

	width, height := g.boardW(), g.boardH()
	for i := range n + 1 {
		dst.DrawHLine(boardX, boardY+i*cellHeight, width, '─', core.ColorGray)
		dst.DrawVLine(boardX+i*cellWidth, boardY, height, '│', core.ColorGray)
	}
	for y := range n + 1 {
		for x := range n + 1 {
			dst.SetColored(boardX+x*cellWidth, boardY+y*cellHeight, gridCorner(x, y, n), core.ColorGray)
		}
	}

	b := g.session.Board()
	for row := range n {
		for col := range n {
			val := b.ValueAt(row, col)
			if val == Empty {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)

			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// gridCorner returns the box-drawing rune for a grid intersection.
func gridCorner(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderStatus draws the line under the board.
func (g *Game) renderStatus(dst *core.Screen, boardX, y int) {
	if g.justEnded && g.session.AutoReset() {
		msg := fmt.Sprintf("No moves left (max %d) - new board", g.lastFinal.MaxTile)
		dst.DrawTextColored(boardX, y+1, msg, core.ColorCyan)
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColored(cx-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | R: Restart | Q: Quit"
}
