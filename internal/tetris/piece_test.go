package tetris

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	// occupied cells as (col,row), row-major
	golden := map[PieceType][][]Cell{
		PieceI: {
			{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		},
		PieceT: {
			{{0, 2}, {1, 2}, {2, 2}, {1, 3}},
			{{1, 1}, {1, 2}, {2, 2}, {1, 3}},
			{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{1, 1}, {0, 2}, {1, 2}, {1, 3}},
		},
		PieceZ: {
			{{0, 2}, {1, 2}, {1, 3}, {2, 3}},
			{{2, 1}, {1, 2}, {2, 2}, {1, 3}},
		},
		PieceS: {
			{{1, 2}, {2, 2}, {0, 3}, {1, 3}},
			{{1, 1}, {1, 2}, {2, 2}, {2, 3}},
		},
		PieceO: {
			{{0, 2}, {1, 2}, {0, 3}, {1, 3}},
		},
		PieceJ: {
			{{0, 2}, {1, 2}, {2, 2}, {2, 3}},
			{{1, 1}, {2, 1}, {1, 2}, {1, 3}},
			{{0, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{1, 1}, {1, 2}, {0, 3}, {1, 3}},
		},
		PieceL: {
			{{0, 2}, {1, 2}, {2, 2}, {0, 3}},
			{{1, 1}, {1, 2}, {1, 3}, {2, 3}},
			{{2, 1}, {0, 2}, {1, 2}, {2, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {1, 3}},
		},
	}

	for _, pt := range PieceTypes {
		t.Run(pt.String(), func(t *testing.T) {
			want := golden[pt]
			require.Equal(t, len(want), RotationCount(pt))
			for rot, cells := range want {
				mask := Shape(pt, rot)
				require.Equal(t, cells, mask.Cells(), "rotation %d:\n%s", rot, mask)
				require.Len(t, mask.Cells(), 4)
			}
		})
	}
}

func TestRotationCount(t *testing.T) {
	want := map[PieceType]int{
		PieceI: 2, PieceT: 4, PieceZ: 2, PieceS: 2, PieceO: 1, PieceJ: 4, PieceL: 4,
	}
	for pt, n := range want {
		require.Equal(t, n, RotationCount(pt), pt.String())
	}
}

func TestWrapRotation(t *testing.T) {
	tests := []struct {
		r, delta, n, want int
	}{
		{0, 1, 4, 1},
		{3, 1, 4, 0},
		{0, -1, 4, 3},
		{0, -1, 2, 1},
		{1, 1, 2, 0},
		{0, 1, 1, 0},
		{0, -1, 1, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, wrapRotation(tt.r, tt.delta, tt.n), "%+v", tt)
	}
}

func TestMaskHeight(t *testing.T) {
	require.Equal(t, 1, Shape(PieceI, 0).Height())
	require.Equal(t, 4, Shape(PieceI, 1).Height())
	require.Equal(t, 2, Shape(PieceO, 0).Height())
	require.Equal(t, 3, Shape(PieceL, 1).Height())
	require.Equal(t, 0, Mask{}.Height())
}

func TestPieceRotatedFullCycle(t *testing.T) {
	for _, pt := range PieceTypes {
		for _, dir := range []int{1, -1} {
			p := NewPiece(pt, 6, 1)
			for i := 0; i < RotationCount(pt); i++ {
				p = p.Rotated(dir)
			}
			require.Equal(t, NewPiece(pt, 6, 1), p, "%s dir %d", pt, dir)
		}
	}
}
