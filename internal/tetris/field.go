package tetris

import (
	"strings"
)

// Field is the playfield grid. The left, right and bottom margins are
// permanently filled with BorderColor. The top margin rows are open so that
// pieces can spawn partly above the visible area.
type Field struct {
	rows   int
	cols   int
	margin int
	cells  [][]Color
}

// Rect is a half-open cell rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns the number of columns in r.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the number of rows in r.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// NewField creates an empty field with its border stamped in.
func NewField(rows, cols, margin int) *Field {
	field := &Field{rows: rows, cols: cols, margin: margin}
	field.cells = make([][]Color, rows)
	for y := 0; y < rows; y++ {
		field.cells[y] = make([]Color, cols)
	}
	field.Clear()
	return field
}

// Clear empties the interior and restores the border.
func (field *Field) Clear() {
	for y := 0; y < field.rows; y++ {
		for x := 0; x < field.cols; x++ {
			if field.isBorder(x, y) {
				field.cells[y][x] = BorderColor
			} else {
				field.cells[y][x] = Empty
			}
		}
	}
}

func (field *Field) isBorder(x, y int) bool {
	m := field.margin
	return (x < m && y >= m) || (x >= field.cols-m && y >= m) || y >= field.rows-m
}

// Rows returns the total grid height including margins.
func (field *Field) Rows() int { return field.rows }

// Cols returns the total grid width including margins.
func (field *Field) Cols() int { return field.cols }

// Margin returns the border thickness.
func (field *Field) Margin() int { return field.margin }

// Interior returns the play area: the cells that can be cleared.
func (field *Field) Interior() Rect {
	return Rect{
		X0: field.margin,
		Y0: field.margin,
		X1: field.cols - field.margin,
		Y1: field.rows - field.margin,
	}
}

func (field *Field) inside(x, y int) bool {
	return x >= 0 && x < field.cols && y >= 0 && y < field.rows
}

// At returns the colour at (x, y). Out-of-range cells read as BorderColor.
func (field *Field) At(x, y int) Color {
	if !field.inside(x, y) {
		return BorderColor
	}
	return field.cells[y][x]
}

// Set colours the cell at (x, y). Out-of-range writes are ignored.
func (field *Field) Set(x, y int, c Color) {
	if !field.inside(x, y) {
		return
	}
	field.cells[y][x] = c
}

// Occupied reports whether (x, y) is filled. Cells outside the grid count as
// filled so that no placement can leave it.
func (field *Field) Occupied(x, y int) bool {
	return field.At(x, y) != Empty
}

// CanPlace reports whether every occupied cell of mask, anchored at (x, y),
// lands on an empty field cell.
func (field *Field) CanPlace(mask Mask, x, y int) bool {
	for my := 0; my < 4; my++ {
		for mx := 0; mx < 4; mx++ {
			if mask[my][mx] && field.Occupied(x+mx, y+my) {
				return false
			}
		}
	}
	return true
}

// Fits reports whether p can be placed where it stands.
func (field *Field) Fits(p Piece) bool {
	return field.CanPlace(p.Mask, p.X, p.Y)
}

// Lock stamps p into the grid with colour c.
func (field *Field) Lock(p Piece, c Color) {
	for _, cell := range p.Mask.Cells() {
		field.Set(p.X+cell.X, p.Y+cell.Y, c)
	}
}

// isFullLine checks if every interior column of row y is filled
func (field *Field) isFullLine(y int) bool {
	for x := field.margin; x < field.cols-field.margin; x++ {
		if field.cells[y][x] == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the full interior rows, bottom first.
func (field *Field) FullRows() []int {
	rows := make([]int, 0, 4)
	for y := field.rows - field.margin - 1; y >= field.margin; y-- {
		if field.isFullLine(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLines removes every full interior row in a single bottom-up pass,
// moving each surviving row down by the number of full rows found below it.
// The vacated rows at the top of the interior are emptied. It returns the
// number of rows removed.
func (field *Field) ClearLines() int {
	x0, x1 := field.margin, field.cols-field.margin
	delta := 0
	for y := field.rows - field.margin - 1; y >= field.margin; y-- {
		if field.isFullLine(y) {
			delta++
			continue
		}
		if delta > 0 {
			copy(field.cells[y+delta][x0:x1], field.cells[y][x0:x1])
		}
	}
	for y := field.margin; y < field.margin+delta; y++ {
		for x := x0; x < x1; x++ {
			field.cells[y][x] = Empty
		}
	}
	return delta
}

// Recolor repaints interior cells from one palette to another, matching by
// piece type.
func (field *Field) Recolor(from, to Palette) {
	in := field.Interior()
	for y := in.Y0; y < in.Y1; y++ {
		for x := in.X0; x < in.X1; x++ {
			c := field.cells[y][x]
			if c == Empty {
				continue
			}
			for i := range from {
				if c == from[i] {
					field.cells[y][x] = to[i]
					break
				}
			}
		}
	}
}

// Clone returns a deep copy.
func (field *Field) Clone() *Field {
	clone := &Field{rows: field.rows, cols: field.cols, margin: field.margin}
	clone.cells = make([][]Color, field.rows)
	for y := range field.cells {
		clone.cells[y] = append([]Color(nil), field.cells[y]...)
	}
	return clone
}

// InteriorCells copies the play area, row by row.
func (field *Field) InteriorCells() [][]Color {
	in := field.Interior()
	out := make([][]Color, 0, in.Height())
	for y := in.Y0; y < in.Y1; y++ {
		out = append(out, append([]Color(nil), field.cells[y][in.X0:in.X1]...))
	}
	return out
}

// String draws the grid with '#' for border, 'o' for locked cells and '.' for
// empty cells.
func (field *Field) String() string {
	var sb strings.Builder
	for y := 0; y < field.rows; y++ {
		for x := 0; x < field.cols; x++ {
			switch {
			case field.cells[y][x] == Empty:
				sb.WriteByte('.')
			case field.isBorder(x, y):
				sb.WriteByte('#')
			default:
				sb.WriteByte('o')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
