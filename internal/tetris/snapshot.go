package tetris

// PieceView is a piece placed in interior coordinates, ready to draw.
type PieceView struct {
	Type  PieceType
	Mask  Mask
	X     int
	Y     int
	Color Color
}

// Snapshot is everything a renderer needs for one frame. Cell coordinates
// are relative to the play area, so row 0 is the top interior row and rows
// above it are negative.
type Snapshot struct {
	Mode    Mode
	Level   int
	Lines   int
	Score   int
	Rows    int
	Cols    int
	Cells   [][]Color
	Piece   PieceView
	Ghost   int
	Next    PieceView
	Palette Palette
}

// Snapshot copies the current state for rendering.
func (engine *Engine) Snapshot() Snapshot {
	in := engine.field.Interior()
	palette := engine.Palette()
	p := engine.piece
	next := engine.bag.Peek()
	return Snapshot{
		Mode:  engine.mode,
		Level: engine.level,
		Lines: engine.deleteLines,
		Score: engine.score,
		Rows:  in.Height(),
		Cols:  in.Width(),
		Cells: engine.field.InteriorCells(),
		Piece: PieceView{
			Type:  p.Type,
			Mask:  p.Mask,
			X:     p.X - in.X0,
			Y:     p.Y - in.Y0,
			Color: palette.Of(p.Type),
		},
		Ghost: engine.landingRow() - in.Y0,
		Next: PieceView{
			Type:  next,
			Mask:  Shape(next, 0),
			Color: palette.Of(next),
		},
		Palette: palette,
	}
}
