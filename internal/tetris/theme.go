package tetris

// Color is a packed 0xRRGGBB value. The zero Color is an empty cell.
type Color uint32

// Empty marks a free field cell.
const Empty Color = 0

const (
	BorderColor    Color = 0x4040ff
	CoverColor     Color = 0x800000
	CoverEdgeColor Color = 0x200000
	TextColor      Color = 0x808080
	GameOverColor  Color = 0xff1010
)

// RGB unpacks the colour channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Palette maps a piece type to its colour, indexed by PieceType-1.
type Palette [7]Color

// Of returns the colour for t.
func (p Palette) Of(t PieceType) Color {
	if !t.Valid() {
		return Empty
	}
	return p[t-1]
}

var themes = [...]Palette{
	{0xEEAE01, 0x388725, 0xDA1C00, 0xCB20D8, 0x417ACC, 0xA4A5E7, 0xE97E01},
	{0xFF0000, 0xFBB034, 0xFFDD00, 0xC1D82F, 0x00A4E4, 0x8A7967, 0x6A737B},
	{0xBE0027, 0xCF8D2E, 0xE4E932, 0x2C9F45, 0x371777, 0x52325D, 0x444444},
	{0x037EF3, 0x00C16E, 0x0CB9C1, 0xF48924, 0xF85A40, 0xFFC845, 0xCACCD1},
	{0x00AEFF, 0x3369E7, 0x8E43E7, 0xB84592, 0xFF4F81, 0xFF6C5F, 0xFFC168},
}

// ThemeForLevel returns the palette used at the given level. Levels start at
// 1 and the themes cycle.
func ThemeForLevel(level int) Palette {
	if level < 1 {
		level = 1
	}
	return themes[(level-1)%len(themes)]
}
