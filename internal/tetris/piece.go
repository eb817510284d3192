package tetris

import (
	"fmt"
	"strings"
)

// PieceType identifies one of the seven tetrominoes. Values start at 1 and
// double as the index into a Palette.
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceT
	PieceZ
	PieceS
	PieceO
	PieceJ
	PieceL
)

// PieceTypes lists every piece type in numeric order.
var PieceTypes = [7]PieceType{PieceI, PieceT, PieceZ, PieceS, PieceO, PieceJ, PieceL}

func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	case PieceS:
		return "S"
	case PieceO:
		return "O"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	}
	return fmt.Sprintf("PieceType(%d)", uint8(t))
}

// Valid reports whether t names one of the seven pieces.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

// Mask is a 4x4 occupancy grid indexed [row][col].
type Mask [4][4]bool

// Cell is a (col,row) offset inside a mask.
type Cell struct {
	X, Y int
}

// Cells lists the occupied cells in row-major order.
func (m Mask) Cells() []Cell {
	cells := make([]Cell, 0, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if m[y][x] {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Bounds returns the first and last occupied rows. An empty mask yields (4, -1).
func (m Mask) Bounds() (top, bottom int) {
	top, bottom = 4, -1
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if !m[y][x] {
				continue
			}
			top = min(top, y)
			bottom = max(bottom, y)
		}
	}
	return top, bottom
}

// Height is the vertical extent of the occupied cells.
func (m Mask) Height() int {
	top, bottom := m.Bounds()
	if bottom < top {
		return 0
	}
	return bottom - top + 1
}

func (m Mask) String() string {
	var sb strings.Builder
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if m[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < 3 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func maskOf(rows ...string) Mask {
	var m Mask
	for y, row := range rows {
		for x, c := range row {
			m[y][x] = c == '#'
		}
	}
	return m
}

// shapes holds the rotation states of each piece. Rotations are looked up,
// never computed, so T, J and L keep their hand-placed positions.
var shapes = map[PieceType][]Mask{
	PieceI: {
		maskOf("....", "....", "####", "...."),
		maskOf("..#.", "..#.", "..#.", "..#."),
	},
	PieceT: {
		maskOf("....", "....", "###.", ".#.."),
		maskOf("....", ".#..", ".##.", ".#.."),
		maskOf("....", ".#..", "###.", "...."),
		maskOf("....", ".#..", "##..", ".#.."),
	},
	PieceZ: {
		maskOf("....", "....", "##..", ".##."),
		maskOf("....", "..#.", ".##.", ".#.."),
	},
	PieceS: {
		maskOf("....", "....", ".##.", "##.."),
		maskOf("....", ".#..", ".##.", "..#."),
	},
	PieceO: {
		maskOf("....", "....", "##..", "##.."),
	},
	PieceJ: {
		maskOf("....", "....", "###.", "..#."),
		maskOf("....", ".##.", ".#..", ".#.."),
		maskOf("....", "#...", "###.", "...."),
		maskOf("....", ".#..", ".#..", "##.."),
	},
	PieceL: {
		maskOf("....", "....", "###.", "#..."),
		maskOf("....", ".#..", ".#..", ".##."),
		maskOf("....", "..#.", "###.", "...."),
		maskOf("....", "##..", ".#..", ".#.."),
	},
}

// RotationCount returns how many distinct rotation states t has.
func RotationCount(t PieceType) int {
	return len(shapes[t])
}

// Shape returns the mask of t at the given rotation. Callers keep rotation
// within [0, RotationCount(t)).
func Shape(t PieceType, rotation int) Mask {
	return shapes[t][rotation]
}

// wrapRotation steps r by delta and wraps into [0, n).
func wrapRotation(r, delta, n int) int {
	r = (r + delta) % n
	if r < 0 {
		r += n
	}
	return r
}

// Piece is the falling piece. X and Y locate the mask's top-left cell in
// field coordinates.
type Piece struct {
	Type     PieceType
	Rotation int
	Mask     Mask
	X        int
	Y        int
}

// NewPiece returns a piece of type t at rotation 0 anchored at (x, y).
func NewPiece(t PieceType, x, y int) Piece {
	return Piece{
		Type: t,
		Mask: Shape(t, 0),
		X:    x,
		Y:    y,
	}
}

// Rotated returns a copy of p turned by dir steps. The field is not consulted.
func (p Piece) Rotated(dir int) Piece {
	p.Rotation = wrapRotation(p.Rotation, dir, RotationCount(p.Type))
	p.Mask = Shape(p.Type, p.Rotation)
	return p
}

// Moved returns a copy of p translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s r%d @(%d,%d)", p.Type, p.Rotation, p.X, p.Y)
}
