package tetris

import (
	"fmt"
	"strings"
)

// Suggestion is a target placement for the falling piece.
type Suggestion struct {
	Rotation int
	X        int
	Y        int
	Score    int
	Height   int
}

// neighbours are the offsets inspected around each occupied mask cell: left,
// below-left, below, below-right and right.
var neighbours = [5]Cell{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}}

// adjacency counts filled field cells around the mask landed at (x, y).
func adjacency(field *Field, mask Mask, x, y int) int {
	score := 0
	for _, cell := range mask.Cells() {
		for _, n := range neighbours {
			if field.Occupied(x+cell.X+n.X, y+cell.Y+n.Y) {
				score++
			}
		}
	}
	return score
}

// Suggest searches every rotation and reachable column for piece type t,
// starting from the anchor (x, y), and returns the placement whose landed
// cells touch the most filled neighbours. Ties prefer the deeper landing row,
// compared across all rotations. The field is only read.
func Suggest(t PieceType, x, y int, field *Field) (Suggestion, bool) {
	best := Suggestion{Score: -1}
	for rot := 0; rot < RotationCount(t); rot++ {
		mask := Shape(t, rot)

		left := x
		for field.CanPlace(mask, left, y) {
			left--
		}
		for cx := left + 1; field.CanPlace(mask, cx, y); cx++ {
			cy := y
			for field.CanPlace(mask, cx, cy) {
				cy++
			}
			cy--

			score := adjacency(field, mask, cx, cy)
			if score > best.Score || (score == best.Score && cy > best.Y) {
				best = Suggestion{
					Rotation: rot,
					X:        cx,
					Y:        cy,
					Score:    score,
					Height:   mask.Height(),
				}
			}
		}
	}
	if best.Score < 0 {
		return Suggestion{}, false
	}
	return best, true
}

func (s Suggestion) String() string {
	return fmt.Sprintf("rot=%d x=%d y=%d score=%d height=%d", s.Rotation, s.X, s.Y, s.Score, s.Height)
}

// Dump draws field with the suggested placement of t marked as '@'.
func (s Suggestion) Dump(t PieceType, field *Field) string {
	lines := strings.Split(strings.TrimSuffix(field.String(), "\n"), "\n")
	for _, cell := range Shape(t, s.Rotation).Cells() {
		x, y := s.X+cell.X, s.Y+cell.Y
		if y < 0 || y >= len(lines) || x < 0 || x >= len(lines[y]) {
			continue
		}
		row := []byte(lines[y])
		row[x] = '@'
		lines[y] = string(row)
	}
	return s.String() + "\n" + strings.Join(lines, "\n")
}
