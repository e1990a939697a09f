package strike_test

import (
	"testing"

	strike "github.com/kofi-q/strike-go"
	"github.com/stretchr/testify/require"
)

func TestMirror(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 0, 0}, {0, 1, 0}}, 2)
	require.Equal(t, [][]uint8{{0, 0, 1}, {0, 1, 0}}, r.Mirror().Matrix())
}

func TestMirrorInvolution(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Mirror().Mirror().Equal(r))
}

func TestFlip(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 0}, {0, 1}, {1, 1}}, 2)
	require.Equal(t, [][]uint8{{1, 1}, {0, 1}, {1, 0}}, r.Flip().Matrix())
}

func TestFlipInvolution(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Flip().Flip().Equal(r))
}

func TestTranspose(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 2, 3}, {4, 5, 6}}, 16)
	transposed := r.Transpose()
	require.Equal(t, 2, transposed.Width())
	require.Equal(t, 3, transposed.Height())
	require.Equal(t, [][]uint8{{1, 4}, {2, 5}, {3, 6}}, transposed.Matrix())
}

func TestTurnQuarter(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{1, 0},
		{0, 0},
		{0, 1},
	}, 2)
	// One clockwise turn brings the top-left pixel to the top-right corner.
	require.Equal(t, [][]uint8{
		{0, 0, 1},
		{1, 0, 0},
	}, r.Turn(1).Matrix())
}

func TestTurnGroupLaw(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Turn(4).Equal(r))
	require.True(t, r.Turn(1).Turn(1).Turn(1).Turn(1).Equal(r))
	require.True(t, r.Turn(-1).Equal(r.Turn(3)))
	for n := -5; n <= 5; n++ {
		for m := -5; m <= 5; m++ {
			require.True(t,
				r.Turn(n).Turn(m).Equal(r.Turn(n+m)),
				"n=%d m=%d", n, m,
			)
		}
	}
}

func TestTurnComposition(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Turn(1).Equal(r.Transpose().Mirror()))
	require.True(t, r.Turn(2).Equal(r.Mirror().Flip()))
	require.True(t, r.Turn(3).Equal(r.Transpose().Flip()))
}

func TestRoll(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}, 2)
	require.Equal(t, [][]uint8{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
	}, r.Roll(1, 0).Matrix())
	require.Equal(t, [][]uint8{
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 0},
	}, r.Roll(0, 1).Matrix())

	// Rolling wraps, so a full cycle is the identity.
	require.True(t, r.Roll(3, 0).Equal(r))
	require.True(t, r.Roll(-2, 0).Equal(r.Roll(1, 0)))
	require.True(t, r.Roll(0, -1).Equal(r.Roll(0, 2)))
}

func TestRollSingleExtent(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 0, 1}}, 2)
	require.True(t, r.Roll(5, 0).Equal(r))
}

func TestShift(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{1, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	}, 2)
	shifted, err := r.Shift(0, 1, 1, 0)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{
		{0, 0, 0},
		{0, 1, 1},
		{0, 0, 1},
	}, shifted.Matrix())
}

func TestShiftDropsInkAtEdge(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 0}}, 2)
	shifted, err := r.Shift(1, 0, 0, 0)
	require.NoError(t, err)
	require.True(t, shifted.IsBlank())
}

func TestShiftNegative(t *testing.T) {
	_, err := glyph(t).Shift(-1, 0, 0, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
}

func TestCropExpandInverse(t *testing.T) {
	r := glyph(t)
	for _, counts := range [][4]int{
		{0, 0, 0, 0}, {1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0},
		{0, 0, 0, 1}, {1, 2, 3, 1}, {2, 1, 1, 2},
	} {
		expanded, err := r.Expand(counts[0], counts[1], counts[2], counts[3])
		require.NoError(t, err)
		cropped, err := expanded.Crop(counts[0], counts[1], counts[2], counts[3])
		require.NoError(t, err)
		require.True(t, cropped.Equal(r), "counts=%v", counts)
	}
}

func TestCropOvershootFloorsAtZeroHeight(t *testing.T) {
	r := glyph(t)
	cropped, err := r.Crop(1, 10, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 0, cropped.Height())
	require.Equal(t, r.Width()-3, cropped.Width())
}

func TestCropNegative(t *testing.T) {
	_, err := glyph(t).Crop(0, -1, 0, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
	_, err = glyph(t).Expand(0, 0, -1, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
}

func TestExpandZeroHeight(t *testing.T) {
	r, err := strike.Blank(2, 0, 2)
	require.NoError(t, err)
	expanded, err := r.Expand(1, 0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 4, expanded.Width())
	require.Equal(t, 0, expanded.Height())
}

func TestStretchShrinkRoundTrip(t *testing.T) {
	r := glyph(t)
	for _, f := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 3}, {3, 2}} {
		stretched, err := r.Stretch(f[0], f[1])
		require.NoError(t, err)
		require.Equal(t, r.Width()*f[0], stretched.Width())
		require.Equal(t, r.Height()*f[1], stretched.Height())

		shrunk, err := stretched.Shrink(f[0], f[1])
		require.NoError(t, err)
		require.True(t, shrunk.Equal(r), "factors=%v", f)
	}
}

func TestStretchShrinkReject(t *testing.T) {
	_, err := glyph(t).Stretch(0, 1)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
	_, err = glyph(t).Shrink(1, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
}

func TestOverlayIdentity(t *testing.T) {
	r := glyph(t)
	blank, err := strike.Blank(r.Width(), r.Height(), 2)
	require.NoError(t, err)
	combined, err := r.Overlay(strike.CombineAny, blank)
	require.NoError(t, err)
	require.True(t, combined.Equal(r))
}

func TestOverlayAdditiveAndMasking(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1, 1, 0, 0}}, 2)
	b := mustRaster(t, [][]uint8{{0, 1, 1, 0}}, 2)

	union, err := a.Overlay(strike.CombineAny, b)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{1, 1, 1, 0}}, union.Matrix())

	masked, err := a.Overlay(strike.CombineAll, b)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{0, 1, 0, 0}}, masked.Matrix())
}

func TestOverlayFlattensGreys(t *testing.T) {
	// Overlay composes on ink presence only: any inked cell comes out at
	// full ink, whatever its grey level was.
	a := mustRaster(t, [][]uint8{{0, 3, 7}}, 16)
	b := mustRaster(t, [][]uint8{{1, 0, 0}}, 16)
	combined, err := a.Overlay(strike.CombineAny, b)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{15, 15, 15}}, combined.Matrix())
}

func TestOverlayShapeMismatch(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1, 0}}, 2)
	b := mustRaster(t, [][]uint8{{1}}, 2)
	_, err := a.Overlay(strike.CombineAny, b)
	require.ErrorIs(t, err, strike.ErrShapeMismatch)
}

func TestInvertInvolution(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Invert().Invert().Equal(r))

	grey := greyGlyph(t)
	require.True(t, grey.Invert().Invert().Equal(grey))
	require.Equal(t, [][]uint8{{15, 8, 0}, {0, 12, 15}}, grey.Invert().Matrix())
}

func TestSmearRight(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1, 0, 0, 0}}, 2)
	smeared, err := r.Smear(0, 2, 0, 0)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{1, 1, 1, 0}}, smeared.Matrix())
}

func TestSmearDown(t *testing.T) {
	r := mustRaster(t, [][]uint8{{1}, {0}, {0}}, 2)
	smeared, err := r.Smear(0, 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{1}, {1}, {0}}, smeared.Matrix())
}

func TestSmearNegative(t *testing.T) {
	_, err := glyph(t).Smear(0, 0, -1, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
}

func TestShearRight(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{1, 1, 0, 0},
	}, 2)
	// Pitch 1/1: each row shifts right by its distance from the bottom.
	sheared, err := r.Shear(strike.DirRight, 1, 1, 0)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{
		{0, 0, 1, 1},
		{0, 1, 1, 0},
		{1, 1, 0, 0},
	}, sheared.Matrix())
}

func TestShearLeft(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	}, 2)
	sheared, err := r.Shear(strike.DirLeft, 1, 1, 0)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{
		{0, 1, 1, 0},
		{0, 0, 1, 1},
	}, sheared.Matrix())
}

func TestShearSingleRowNoOp(t *testing.T) {
	// The bottom row never shifts, so a one-row raster shears to itself.
	r := mustRaster(t, [][]uint8{{1, 0, 1}}, 2)
	sheared, err := r.Shear(strike.DirRight, 1, 1, 0)
	require.NoError(t, err)
	require.True(t, sheared.Equal(r))
}

func TestShearPitch(t *testing.T) {
	r := mustRaster(t, [][]uint8{
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
	}, 2)
	// Pitch 1/2 shifts one column every two rows.
	sheared, err := r.Shear(strike.DirRight, 1, 2, 0)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
	}, sheared.Matrix())
}

func TestShearInvalid(t *testing.T) {
	_, err := glyph(t).Shear(strike.Direction(9), 1, 1, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
	_, err = glyph(t).Shear(strike.DirLeft, 1, 0, 0)
	require.ErrorIs(t, err, strike.ErrInvalidArgument)
}

func TestUnderline(t *testing.T) {
	r, err := strike.Blank(3, 4, 2)
	require.NoError(t, err)
	// Band [1, 1] from the bottom inks the second row up.
	underlined := r.Underline(1, 1)
	require.Equal(t, [][]uint8{
		{0, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	}, underlined.Matrix())
}

func TestUnderlineBand(t *testing.T) {
	r, err := strike.Blank(2, 4, 2)
	require.NoError(t, err)
	underlined := r.Underline(2, 0)
	require.Equal(t, [][]uint8{
		{0, 0},
		{1, 1},
		{1, 1},
		{1, 1},
	}, underlined.Matrix())
}

func TestUnderlineEmptyBand(t *testing.T) {
	r := glyph(t)
	require.True(t, r.Underline(0, 1).Equal(r))
}

func TestConcat(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1}, {0}}, 2)
	b := mustRaster(t, [][]uint8{{0, 1}, {1, 0}}, 2)
	empty, err := strike.Blank(0, 2, 2)
	require.NoError(t, err)

	joined, err := strike.Concat(a, empty, b)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{1, 0, 1}, {0, 1, 0}}, joined.Matrix())
}

func TestConcatHeightMismatch(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1}}, 2)
	b := mustRaster(t, [][]uint8{{1}, {0}}, 2)
	_, err := strike.Concat(a, b)
	require.ErrorIs(t, err, strike.ErrShapeMismatch)
}

func TestConcatEmpty(t *testing.T) {
	joined, err := strike.Concat()
	require.NoError(t, err)
	require.Equal(t, 0, joined.Width())
	require.Equal(t, 0, joined.Height())
}

func TestStack(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1, 0}}, 2)
	b := mustRaster(t, [][]uint8{{0, 1}, {1, 1}}, 2)
	empty, err := strike.Blank(2, 0, 2)
	require.NoError(t, err)

	stacked, err := strike.Stack(a, empty, b)
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{1, 0}, {0, 1}, {1, 1}}, stacked.Matrix())
}

func TestStackWidthMismatch(t *testing.T) {
	a := mustRaster(t, [][]uint8{{1, 0}}, 2)
	b := mustRaster(t, [][]uint8{{1}}, 2)
	_, err := strike.Stack(a, b)
	require.ErrorIs(t, err, strike.ErrShapeMismatch)
}

func TestTransformsPreserveLevels(t *testing.T) {
	r := greyGlyph(t)
	require.Equal(t, 16, r.Mirror().Levels())
	require.Equal(t, 16, r.Flip().Levels())
	require.Equal(t, 16, r.Transpose().Levels())
	require.Equal(t, 16, r.Turn(1).Levels())
	require.Equal(t, 16, r.Roll(1, 1).Levels())
	require.Equal(t, 16, r.Invert().Levels())

	shifted, err := r.Shift(1, 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 16, shifted.Levels())
}

func TestTransformsDoNotMutate(t *testing.T) {
	r := glyph(t)
	snapshot := r.Matrix()
	r.Mirror()
	r.Flip()
	r.Turn(2)
	r.Roll(1, 1)
	r.Invert()
	_, err := r.Smear(1, 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, snapshot, r.Matrix())
}
