package tui

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell"

	"github.com/tetrislab/tetris-cli/internal/tetris"
)

const (
	boardXOffset = 4
	boardYOffset = 2
)

// Delays paces the blocking animations.
type Delays struct {
	Flash  time.Duration
	Reveal time.Duration
	Cover  time.Duration
}

// DefaultDelays returns the animation timings used in a live game.
func DefaultDelays() Delays {
	return Delays{
		Flash:  140 * time.Millisecond,
		Reveal: 50 * time.Millisecond,
		Cover:  60 * time.Millisecond,
	}
}

// View draws engine snapshots on a tcell screen.
type View struct {
	screen tcell.Screen
	logger *log.Logger
	delays Delays

	mu      sync.Mutex
	last    tetris.Snapshot
	drawn   bool
	ranking []uint64

	pump chan struct{}
}

// NewView initialises screen and returns a view drawing on it.
func NewView(screen tcell.Screen, logger *log.Logger) (*View, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	screen.Clear()

	return &View{
		screen: screen,
		logger: logger,
		delays: DefaultDelays(),
	}, nil
}

// SetDelays changes the animation pacing.
func (view *View) SetDelays(delays Delays) {
	view.delays = delays
}

// SetRanking sets the high scores shown on the game over screen.
func (view *View) SetRanking(scores []uint64) {
	view.mu.Lock()
	view.ranking = append([]uint64(nil), scores...)
	view.mu.Unlock()
}

// Stop stops the key pump, if running, and restores the terminal.
func (view *View) Stop() {
	view.logger.Println("View Stop start")

	if view.pump != nil {
		ev := &eventStop{}
		ev.SetEventNow()
		view.screen.PostEventWait(ev)
		<-view.pump
		view.pump = nil
	}
	view.screen.Fini()

	view.logger.Println("View Stop end")
}

// Render draws snap and shows it.
func (view *View) Render(snap tetris.Snapshot) {
	view.mu.Lock()
	defer view.mu.Unlock()

	view.last = snap
	view.drawn = true
	view.draw(snap)
	view.screen.Show()
}

// redraw repaints the last snapshot after a resize.
func (view *View) redraw() {
	view.mu.Lock()
	defer view.mu.Unlock()

	view.screen.Clear()
	if view.drawn {
		view.draw(view.last)
	}
	view.screen.Sync()
}

func (view *View) draw(snap tetris.Snapshot) {
	switch snap.Mode {
	case tetris.ModePlay:
		view.drawBoardBorder(snap)
		view.drawPreviewBorder(snap)
		view.drawTexts(snap)
		view.drawCells(snap.Cells)
		view.drawPreviewPiece(snap)
		view.drawGhost(snap)
		view.drawPiece(snap)

	case tetris.ModePause:
		view.screen.Fill(' ', tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack))
		view.drawBoardBorder(snap)
		view.drawPreviewBorder(snap)
		view.drawTexts(snap)
		view.drawTextCenter(snap, (snap.Rows+1)/2+boardYOffset, "Paused", tcell.ColorWhite, tcell.ColorBlack)

	case tetris.ModeOver:
		view.drawBoardBorder(snap)
		view.drawPreviewBorder(snap)
		view.drawTexts(snap)
		view.drawCover(snap.Rows, snap.Cols, 0)
		view.drawGameOver(snap)
		view.drawRankingScores(snap)

	case tetris.ModeDemo:
		view.drawBoardBorder(snap)
		view.drawPreviewBorder(snap)
		view.drawTexts(snap)
		view.drawCells(snap.Cells)
		view.drawPreviewPiece(snap)
		view.drawPiece(snap)
		view.drawTextCenter(snap, boardYOffset+2, "DEMO", tcell.ColorWhite, tcell.ColorBlack)
		view.drawTextCenter(snap, boardYOffset+4, "sbar to play", tcell.ColorWhite, tcell.ColorBlack)
	}
}

// drawBoardBorder draws the board border
func (view *View) drawBoardBorder(snap tetris.Snapshot) {
	xEnd := boardXOffset + snap.Cols*2 + 4
	yEnd := boardYOffset + snap.Rows + 2
	view.drawBox(boardXOffset, boardYOffset, xEnd, yEnd)
}

// drawPreviewBorder draws the preview border
func (view *View) drawPreviewBorder(snap tetris.Snapshot) {
	xOffset := boardXOffset + snap.Cols*2 + 8
	view.drawBox(xOffset, boardYOffset, xOffset+14, boardYOffset+6)
}

func (view *View) drawBox(xOffset, yOffset, xEnd, yEnd int) {
	styleBorder := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(toColor(tetris.BorderColor))
	styleBoard := tcell.StyleDefault.Foreground(tcell.ColorLightGray).Background(tcell.ColorBlack)
	for x := xOffset; x < xEnd; x++ {
		for y := yOffset; y < yEnd; y++ {
			if x == xOffset || x == xOffset+1 || x == xEnd-1 || x == xEnd-2 || y == yOffset || y == yEnd-1 {
				view.screen.SetContent(x, y, ' ', nil, styleBorder)
			} else {
				view.screen.SetContent(x, y, ' ', nil, styleBoard)
			}
		}
	}
}

// drawTexts draws score, lines, level and the key help
func (view *View) drawTexts(snap tetris.Snapshot) {
	xOffset := boardXOffset + snap.Cols*2 + 8
	yOffset := boardYOffset + 7

	view.drawText(xOffset, yOffset, "SCORE:", tcell.ColorLightGray, tcell.ColorDarkBlue)
	view.drawText(xOffset+7, yOffset, fmt.Sprintf("%7d", snap.Score), tcell.ColorBlack, tcell.ColorLightGray)

	yOffset += 2

	view.drawText(xOffset, yOffset, "LINES:", tcell.ColorLightGray, tcell.ColorDarkBlue)
	view.drawText(xOffset+7, yOffset, fmt.Sprintf("%7d", snap.Lines), tcell.ColorBlack, tcell.ColorLightGray)

	yOffset += 2

	view.drawText(xOffset, yOffset, "LEVEL:", tcell.ColorLightGray, tcell.ColorDarkBlue)
	view.drawText(xOffset+7, yOffset, fmt.Sprintf("%4d", snap.Level), tcell.ColorBlack, tcell.ColorLightGray)

	yOffset += 2

	// ascii arrow characters add extra two spaces
	for _, help := range []string{
		"←  - left",
		"→  - right",
		"↓  - soft drop",
		"↑  - rotate right",
		"x    - rotate right",
		"z    - rotate left",
		"p    - pause",
		"sbar - start/pause",
		"q    - quit",
	} {
		view.drawText(xOffset, yOffset, help, tcell.ColorLightGray, tcell.ColorBlack)
		yOffset++
	}
}

// drawCells draws the locked cells of the play area
func (view *View) drawCells(cells [][]tetris.Color) {
	for y, row := range cells {
		for x, c := range row {
			if c != tetris.Empty {
				view.drawBlock(x, y, c)
			}
		}
	}
}

// drawPiece draws the falling piece, clipping rows above the play area
func (view *View) drawPiece(snap tetris.Snapshot) {
	p := snap.Piece
	for _, cell := range p.Mask.Cells() {
		x, y := p.X+cell.X, p.Y+cell.Y
		if y < 0 || y >= snap.Rows || x < 0 || x >= snap.Cols {
			continue
		}
		view.drawBlock(x, y, p.Color)
	}
}

// drawGhost marks where the falling piece would land
func (view *View) drawGhost(snap tetris.Snapshot) {
	p := snap.Piece
	if snap.Ghost <= p.Y {
		return
	}
	style := tcell.StyleDefault.Foreground(toColor(p.Color)).Background(tcell.ColorBlack)
	for _, cell := range p.Mask.Cells() {
		x, y := p.X+cell.X, snap.Ghost+cell.Y
		if y < 0 || y >= snap.Rows || x < 0 || x >= snap.Cols {
			continue
		}
		view.screen.SetContent(2*x+boardXOffset+2, y+boardYOffset+1, '░', nil, style)
		view.screen.SetContent(2*x+boardXOffset+3, y+boardYOffset+1, '░', nil, style)
	}
}

// drawPreviewPiece draws the next piece inside the preview box
func (view *View) drawPreviewPiece(snap tetris.Snapshot) {
	next := snap.Next
	cells := next.Mask.Cells()
	if len(cells) == 0 {
		return
	}
	left, right := cells[0].X, cells[0].X
	for _, cell := range cells {
		left = min(left, cell.X)
		right = max(right, cell.X)
	}
	top, bottom := next.Mask.Bounds()

	xOffset := boardXOffset + snap.Cols*2 + 11 + (4 - (right - left + 1))
	yOffset := boardYOffset + 2 - (bottom-top)/2
	style := tcell.StyleDefault.Foreground(toColor(next.Color)).Background(toColor(next.Color))
	for _, cell := range cells {
		x := xOffset + 2*(cell.X-left)
		y := yOffset + cell.Y - top
		view.screen.SetContent(x, y, ' ', nil, style)
		view.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// drawBlock draws one play area cell
func (view *View) drawBlock(x, y int, c tetris.Color) {
	style := tcell.StyleDefault.Foreground(toColor(c)).Background(toColor(c))
	view.screen.SetContent(2*x+boardXOffset+2, y+boardYOffset+1, ' ', nil, style)
	view.screen.SetContent(2*x+boardXOffset+3, y+boardYOffset+1, ' ', nil, style)
}

// drawCover paints the game over pattern on rows from..rows-1
func (view *View) drawCover(rows, cols, from int) {
	for y := from; y < rows; y++ {
		view.colorizeLine(y, cols, coverColor(rows, y))
	}
}

// drawGameOver draws GAME OVER
func (view *View) drawGameOver(snap tetris.Snapshot) {
	yOffset := boardYOffset + 2
	view.drawTextCenter(snap, yOffset, " GAME OVER", toColor(tetris.GameOverColor), tcell.ColorBlack)
	yOffset += 2
	view.drawTextCenter(snap, yOffset, "sbar for new game", tcell.ColorWhite, tcell.ColorBlack)
	if snap.Score > 0 {
		yOffset += 2
		view.drawTextCenter(snap, yOffset, fmt.Sprintf("score %d", snap.Score), toColor(tetris.TextColor), tcell.ColorBlack)
	}
}

// drawRankingScores draws the ranking scores
func (view *View) drawRankingScores(snap tetris.Snapshot) {
	yOffset := boardYOffset + 10
	for index, score := range view.ranking {
		view.drawTextCenter(snap, yOffset+index, fmt.Sprintf("%1d: %7d", index+1, score), tcell.ColorWhite, tcell.ColorBlack)
	}
}

// drawText draws the provided text
func (view *View) drawText(x int, y int, text string, fg tcell.Color, bg tcell.Color) {
	style := tcell.StyleDefault.Foreground(fg).Background(bg)
	for index, char := range text {
		view.screen.SetContent(x+index, y, char, nil, style)
	}
}

// drawTextCenter draws text in the center of the board
func (view *View) drawTextCenter(snap tetris.Snapshot, y int, text string, fg tcell.Color, bg tcell.Color) {
	xOffset := snap.Cols - (len(text)+1)/2 + boardXOffset + 2
	view.drawText(xOffset, y, text, fg, bg)
}

// colorizeLine changes the color of a line
func (view *View) colorizeLine(y, cols int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(color)
	for x := 0; x < cols; x++ {
		view.screen.SetContent(x*2+boardXOffset+2, y+boardYOffset+1, ' ', nil, style)
		view.screen.SetContent(x*2+boardXOffset+3, y+boardYOffset+1, ' ', nil, style)
	}
}

// coverColor alternates the two cover shades counting from the bottom row.
func coverColor(rows, y int) tcell.Color {
	if (rows-1-y)%2 == 0 {
		return toColor(tetris.CoverColor)
	}
	return toColor(tetris.CoverEdgeColor)
}

func toColor(c tetris.Color) tcell.Color {
	if c == tetris.Empty {
		return tcell.ColorBlack
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
