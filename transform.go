package strike

import "fmt"

// Direction selects the slant of a shear.
type Direction uint8

const (
	// DirLeft slants the raster towards the left.
	DirLeft Direction = iota

	// DirRight slants the raster towards the right.
	DirRight
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// ParseDirection converts an external configuration token to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: shear direction %q", ErrInvalidArgument, s)
}

// Combine selects the per-cell aggregation used by Overlay.
type Combine uint8

const (
	// CombineAny inks a cell when any operand inks it (additive).
	CombineAny Combine = iota

	// CombineAll inks a cell only when every operand inks it (masking).
	CombineAll
)

// Mirror reverses pixel order within every row.
func (r Raster) Mirror() Raster {
	rows := make([][]uint8, r.Height())
	for i, row := range r.pixels {
		out := make([]uint8, len(row))
		for j, p := range row {
			out[len(row)-1-j] = p
		}
		rows[i] = out
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Flip reverses row order.
func (r Raster) Flip() Raster {
	rows := make([][]uint8, r.Height())
	for i, row := range r.pixels {
		rows[r.Height()-1-i] = append([]uint8(nil), row...)
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Transpose swaps row and column roles: the result is as tall as the
// original is wide, and vice versa.
func (r Raster) Transpose() Raster {
	rows := make([][]uint8, r.width)
	for i := range rows {
		out := make([]uint8, r.Height())
		for j := range out {
			out[j] = r.pixels[j][i]
		}
		rows[i] = out
	}
	return rasterOf(rows, r.Height(), r.Levels())
}

// Turn rotates by quarter turns clockwise; negative counts rotate
// anticlockwise. The rotation is composed from Transpose, Mirror and Flip.
func (r Raster) Turn(turns int) Raster {
	switch ((turns % 4) + 4) % 4 {
	case 1:
		return r.Transpose().Mirror()
	case 2:
		return r.Mirror().Flip()
	case 3:
		return r.Transpose().Flip()
	}
	return r
}

// Roll cycles rows and/or columns: down rows downwards and right columns to
// the right, negative counts the other way. Content wraps around, so no
// fill is needed. An axis with extent 1 or less is left alone.
func (r Raster) Roll(down, right int) Raster {
	h := r.Height()
	rows := r.Matrix()
	if h > 1 && down != 0 {
		n := ((down % h) + h) % h
		rows = append(rows[h-n:], rows[:h-n]...)
	}
	if r.width > 1 && right != 0 {
		w := r.width
		n := ((right % w) + w) % w
		for i, row := range rows {
			rows[i] = append(append([]uint8(nil), row[w-n:]...), row[:w-n]...)
		}
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Shift moves the content by the given non-negative counts in each
// direction, filling vacated cells with paper. Net movement is down-up rows
// and right-left columns; ink shifted past the edge is lost.
func (r Raster) Shift(left, down, right, up int) (Raster, error) {
	if left < 0 || down < 0 || right < 0 || up < 0 {
		return Raster{}, fmt.Errorf(
			"%w: can only shift by a positive amount", ErrInvalidArgument,
		)
	}
	dy := down - up
	dx := right - left
	rows := make([][]uint8, r.Height())
	for y := range rows {
		row := make([]uint8, r.width)
		sy := y - dy
		if sy >= 0 && sy < r.Height() {
			for x := range row {
				sx := x - dx
				if sx >= 0 && sx < r.width {
					row[x] = r.pixels[sy][sx]
				}
			}
		}
		rows[y] = row
	}
	return rasterOf(rows, r.width, r.Levels()), nil
}

// Crop removes the given non-negative counts of columns and rows from each
// edge. Cropping away all rows yields a zero-height raster of the surviving
// width, never a negative dimension.
func (r Raster) Crop(left, bottom, right, top int) (Raster, error) {
	if left < 0 || bottom < 0 || right < 0 || top < 0 {
		return Raster{}, fmt.Errorf(
			"%w: can only crop by a positive amount", ErrInvalidArgument,
		)
	}
	width := r.width - left - right
	if width < 0 {
		width = 0
	}
	if r.Height()-top-bottom <= 0 {
		return r.blankLike(width, 0), nil
	}
	rows := make([][]uint8, 0, r.Height()-top-bottom)
	for y := top; y < r.Height()-bottom; y++ {
		row := make([]uint8, width)
		if width > 0 {
			copy(row, r.pixels[y][left:left+width])
		}
		rows = append(rows, row)
	}
	return rasterOf(rows, width, r.Levels()), nil
}

// Expand adds paper-filled columns and rows on each edge; the inverse of
// Crop for non-negative counts.
func (r Raster) Expand(left, bottom, right, top int) (Raster, error) {
	if left < 0 || bottom < 0 || right < 0 || top < 0 {
		return Raster{}, fmt.Errorf(
			"%w: can only expand by a positive amount", ErrInvalidArgument,
		)
	}
	width := left + r.width + right
	if top+r.Height()+bottom == 0 {
		return r.blankLike(width, 0), nil
	}
	rows := make([][]uint8, 0, top+r.Height()+bottom)
	for i := 0; i < top; i++ {
		rows = append(rows, make([]uint8, width))
	}
	for _, row := range r.pixels {
		out := make([]uint8, width)
		copy(out[left:], row)
		rows = append(rows, out)
	}
	for i := 0; i < bottom; i++ {
		rows = append(rows, make([]uint8, width))
	}
	return rasterOf(rows, width, r.Levels()), nil
}

// Stretch repeats every column fx times and every row fy times
// (nearest-neighbor upscale). Factors must be at least 1; (1, 1) is the
// identity.
func (r Raster) Stretch(fx, fy int) (Raster, error) {
	if fx < 1 || fy < 1 {
		return Raster{}, fmt.Errorf(
			"%w: stretch factors must be positive", ErrInvalidArgument,
		)
	}
	rows := make([][]uint8, 0, r.Height()*fy)
	for _, row := range r.pixels {
		out := make([]uint8, 0, len(row)*fx)
		for _, p := range row {
			for i := 0; i < fx; i++ {
				out = append(out, p)
			}
		}
		for i := 0; i < fy; i++ {
			rows = append(rows, append([]uint8(nil), out...))
		}
	}
	return rasterOf(rows, r.width*fx, r.Levels()), nil
}

// Shrink keeps every fx-th column and fy-th row starting at index 0
// (nearest-neighbor downscale, not averaging). Factors must be at least 1.
func (r Raster) Shrink(fx, fy int) (Raster, error) {
	if fx < 1 || fy < 1 {
		return Raster{}, fmt.Errorf(
			"%w: shrink factors must be positive", ErrInvalidArgument,
		)
	}
	rows := make([][]uint8, 0, ceilDiv(r.Height(), fy))
	width := ceilDiv(r.width, fx)
	for y := 0; y < r.Height(); y += fy {
		out := make([]uint8, 0, width)
		for x := 0; x < r.width; x += fx {
			out = append(out, r.pixels[y][x])
		}
		rows = append(rows, out)
	}
	return rasterOf(rows, width, r.Levels()), nil
}

// Overlay composes equal-sized rasters cell by cell on their boolean
// ink-presence values: CombineAny is additive, CombineAll masking. Every
// inked cell of the result is at full ink, regardless of the operands'
// grey levels.
func (r Raster) Overlay(mode Combine, others ...Raster) (Raster, error) {
	if mode != CombineAny && mode != CombineAll {
		return Raster{}, fmt.Errorf(
			"%w: unknown overlay mode", ErrInvalidArgument,
		)
	}
	mask := r.Mask()
	for _, o := range others {
		if o.width != r.width || o.Height() != r.Height() {
			return Raster{}, fmt.Errorf(
				"%w: overlay operand is %dx%d, want %dx%d",
				ErrShapeMismatch, o.width, o.Height(), r.width, r.Height(),
			)
		}
		if mode == CombineAny {
			mask.InPlaceUnion(o.Mask())
		} else {
			mask.InPlaceIntersection(o.Mask())
		}
	}
	return r.fromMask(mask), nil
}

// Invert reverses the ink-level alphabet, swapping paper and full ink: a
// color swap, not a structural change.
func (r Raster) Invert() Raster {
	maxInk := uint8(r.Levels() - 1)
	rows := make([][]uint8, r.Height())
	for i, row := range r.pixels {
		out := make([]uint8, len(row))
		for j, p := range row {
			out[j] = maxInk - p
		}
		rows[i] = out
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Smear overlays the raster with copies of itself shifted by 1..k steps in
// each direction with a nonzero count k, simulating bold by ink-trail
// repetition. All four counts are independent and combinable.
func (r Raster) Smear(left, right, up, down int) (Raster, error) {
	if left < 0 || right < 0 || up < 0 || down < 0 {
		return Raster{}, fmt.Errorf(
			"%w: can only smear by a positive amount", ErrInvalidArgument,
		)
	}
	work := r
	shift := func(w Raster, l, d, rt, u int) Raster {
		s, _ := w.Shift(l, d, rt, u)
		return s
	}
	for _, dir := range []struct {
		count int
		mk    func(w Raster, i int) Raster
	}{
		{left, func(w Raster, i int) Raster { return shift(w, i, 0, 0, 0) }},
		{right, func(w Raster, i int) Raster { return shift(w, 0, 0, i, 0) }},
		{up, func(w Raster, i int) Raster { return shift(w, 0, 0, 0, i) }},
		{down, func(w Raster, i int) Raster { return shift(w, 0, i, 0, 0) }},
	} {
		if dir.count == 0 {
			continue
		}
		shifted := make([]Raster, dir.count)
		for i := range shifted {
			shifted[i] = dir.mk(work, i+1)
		}
		var err error
		work, err = work.Overlay(CombineAny, shifted...)
		if err != nil {
			return Raster{}, err
		}
	}
	return work, nil
}

// Shear slants the raster diagonally: each row shifts horizontally in
// proportion to its distance from the bottom row and the rational pitch
// xpitch/ypitch, with vacated cells filled with paper. The bottom row stays
// fixed. modulo offsets the phase of the stepping; at modulo == ypitch the
// shift is corrected down by one to stay on the pitch boundary.
func (r Raster) Shear(dir Direction, xpitch, ypitch, modulo int) (Raster, error) {
	if dir != DirLeft && dir != DirRight {
		return Raster{}, fmt.Errorf(
			"%w: shear direction must be left or right", ErrInvalidArgument,
		)
	}
	if xpitch < 0 || ypitch < 1 || modulo < 0 {
		return Raster{}, fmt.Errorf(
			"%w: shear pitch must be positive", ErrInvalidArgument,
		)
	}
	correction := 0
	if modulo == ypitch {
		correction = 1
	}
	rows := make([][]uint8, r.Height())
	for i := range rows {
		y := r.Height() - 1 - i
		n := (y*xpitch+modulo)/ypitch - correction
		if n < 0 {
			n = 0
		}
		if n > r.width {
			n = r.width
		}
		out := make([]uint8, r.width)
		if dir == DirLeft {
			copy(out, r.pixels[i][n:])
		} else {
			copy(out[n:], r.pixels[i][:r.width-n])
		}
		rows[i] = out
	}
	return rasterOf(rows, r.width, r.Levels()), nil
}

// Underline overwrites with full ink every row whose distance from the
// bottom row lies in the inclusive band [bottom, top]. A band with
// bottom > top is a no-op.
func (r Raster) Underline(top, bottom int) Raster {
	if bottom > top {
		return r
	}
	clamp := func(v int) int {
		return min(r.Height(), max(0, v))
	}
	top, bottom = clamp(top), clamp(bottom)
	ink := uint8(r.Levels() - 1)
	rows := make([][]uint8, r.Height())
	for i, row := range r.pixels {
		out := make([]uint8, len(row))
		if b := r.Height() - 1 - i; bottom <= b && b <= top {
			for j := range out {
				out[j] = ink
			}
		} else {
			copy(out, row)
		}
		rows[i] = out
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Concat joins rasters left to right. All operands must share one height
// and level count; zero-width operands are dropped first. With no operands
// the result is an empty raster.
func Concat(rasters ...Raster) (Raster, error) {
	kept := make([]Raster, 0, len(rasters))
	for _, r := range rasters {
		if r.width > 0 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return Raster{}, nil
	}
	first := kept[0]
	width := 0
	for _, r := range kept {
		if r.Height() != first.Height() {
			return Raster{}, fmt.Errorf(
				"%w: cannot concatenate heights %d and %d",
				ErrShapeMismatch, first.Height(), r.Height(),
			)
		}
		if r.Levels() != first.Levels() {
			return Raster{}, fmt.Errorf(
				"%w: cannot concatenate %d and %d levels",
				ErrUnsupportedDepth, first.Levels(), r.Levels(),
			)
		}
		width += r.width
	}
	rows := make([][]uint8, first.Height())
	for y := range rows {
		row := make([]uint8, 0, width)
		for _, r := range kept {
			row = append(row, r.pixels[y]...)
		}
		rows[y] = row
	}
	return rasterOf(rows, width, first.Levels()), nil
}

// Stack joins rasters top to bottom. All operands must share one width and
// level count; zero-height operands are dropped first. With no operands the
// result is an empty raster.
func Stack(rasters ...Raster) (Raster, error) {
	kept := make([]Raster, 0, len(rasters))
	for _, r := range rasters {
		if r.Height() > 0 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return Raster{}, nil
	}
	first := kept[0]
	rows := make([][]uint8, 0)
	for _, r := range kept {
		if r.width != first.width {
			return Raster{}, fmt.Errorf(
				"%w: cannot stack widths %d and %d",
				ErrShapeMismatch, first.width, r.width,
			)
		}
		if r.Levels() != first.Levels() {
			return Raster{}, fmt.Errorf(
				"%w: cannot stack %d and %d levels",
				ErrUnsupportedDepth, first.Levels(), r.Levels(),
			)
		}
		rows = append(rows, r.Matrix()...)
	}
	return rasterOf(rows, first.width, first.Levels()), nil
}
