package tui

import (
	"time"

	"github.com/gdamore/tcell"

	"github.com/tetrislab/tetris-cli/internal/tetris"
)

// Animate plays the animation for event and returns when it is done. It is
// meant to be subscribed to a Runner, which holds the game meanwhile.
func (view *View) Animate(event tetris.Event) {
	switch event := event.(type) {
	case *tetris.EventLineCollapse:
		view.showDeleteAnimation(event)
	case *tetris.EventStartReveal:
		view.showRevealAnimation()
	case *tetris.EventGameOverCover:
		view.showGameOverAnimation(event)
	}
}

// showDeleteAnimation flashes the completed rows over the field as it was
// before they collapsed.
func (view *View) showDeleteAnimation(event *tetris.EventLineCollapse) {
	view.mu.Lock()
	defer view.mu.Unlock()

	in := event.Field.Interior()
	cells := event.Field.InteriorCells()
	rows, cols := in.Height(), in.Width()

	for times := 0; times < 3; times++ {
		for _, y := range event.Rows {
			view.colorizeLine(y-in.Y0, cols, tcell.ColorLightGray)
		}
		view.screen.Show()
		view.sleep(view.delays.Flash)

		view.clearBoard(rows, cols)
		view.drawCells(cells)
		view.screen.Show()
		view.sleep(view.delays.Flash)
	}
}

// showRevealAnimation uncovers the play area from the middle row outwards.
func (view *View) showRevealAnimation() {
	view.logger.Println("View showRevealAnimation start")
	view.mu.Lock()
	defer view.mu.Unlock()

	rows, cols := view.boardSize()
	view.drawCover(rows, cols, 0)
	view.screen.Show()

	upper, lower := (rows-1)/2, rows/2
	for upper >= 0 || lower < rows {
		if upper >= 0 {
			view.colorizeLine(upper, cols, tcell.ColorBlack)
		}
		if lower < rows {
			view.colorizeLine(lower, cols, tcell.ColorBlack)
		}
		upper--
		lower++
		view.screen.Show()
		view.sleep(view.delays.Reveal)
	}

	view.logger.Println("View showRevealAnimation end")
}

// showGameOverAnimation covers the final field one row at a time from the
// bottom up.
func (view *View) showGameOverAnimation(event *tetris.EventGameOverCover) {
	view.logger.Printf("View showGameOverAnimation start, demo %v score %d", event.Demo, event.Score)
	view.mu.Lock()
	defer view.mu.Unlock()

	in := event.Field.Interior()
	rows, cols := in.Height(), in.Width()
	view.clearBoard(rows, cols)
	view.drawCells(event.Field.InteriorCells())
	view.screen.Show()

	for y := rows - 1; y >= 0; y-- {
		view.colorizeLine(y, cols, coverColor(rows, y))
		view.screen.Show()
		view.sleep(view.delays.Cover)
	}

	view.logger.Println("View showGameOverAnimation end")
}

func (view *View) clearBoard(rows, cols int) {
	for y := 0; y < rows; y++ {
		view.colorizeLine(y, cols, tcell.ColorBlack)
	}
}

// boardSize is the play area of the last frame, or the classic 20x10
// before anything was drawn.
func (view *View) boardSize() (rows, cols int) {
	if !view.drawn {
		return 20, 10
	}
	return view.last.Rows, view.last.Cols
}

func (view *View) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
