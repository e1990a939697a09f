// Package strike manipulates bitmap glyph rasters: immutable rectangular
// grids of ink-level ordinals, together with a codec between the grid and
// arbitrary packed binary pixel layouts, and a library of pure geometric
// and photometric transforms.
//
// A raster holds 2, 4, 16 or 256 ink levels, one ordinal per pixel, with
// ordinal 0 as paper (background) and the highest ordinal as full ink.
// Every operation returns a new value; no raster is ever mutated after
// construction, so values can be shared freely across goroutines.
package strike

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/kofi-q/strike-go/blocks"
)

// Align selects how encoded rows relate to byte boundaries.
type Align uint8

const (
	// AlignLeft starts every row on a byte boundary, padding on the right.
	AlignLeft Align = iota

	// AlignRight ends every row on a byte boundary, padding on the left.
	AlignRight

	// AlignBit packs rows back to back with no inter-row padding.
	AlignBit
)

// String implements fmt.Stringer.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignBit:
		return "bit"
	}
	return "unknown"
}

// ParseAlign converts an external configuration token to an Align value.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "bit":
		return AlignBit, nil
	}
	return 0, fmt.Errorf("%w: alignment %q", ErrInvalidArgument, s)
}

// ByteOrder selects the layout of a multi-row byte buffer.
type ByteOrder uint8

const (
	// RowMajor lays the buffer out row by row.
	RowMajor ByteOrder = iota

	// ColumnMajor lays the buffer out byte-column by byte-column. It has no
	// effect on bit-aligned packing.
	ColumnMajor
)

// String implements fmt.Stringer.
func (o ByteOrder) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	}
	return "unknown"
}

// ParseByteOrder converts an external configuration token to a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "row-major":
		return RowMajor, nil
	case "column-major":
		return ColumnMajor, nil
	}
	return 0, fmt.Errorf("%w: byte order %q", ErrInvalidArgument, s)
}

// BitOrder selects which end of a byte holds the leftmost pixel.
type BitOrder uint8

const (
	// MSBFirst puts the leftmost pixel in the most significant bits.
	MSBFirst BitOrder = iota

	// LSBFirst puts the leftmost pixel in the least significant bits.
	LSBFirst
)

// String implements fmt.Stringer.
func (o BitOrder) String() string {
	switch o {
	case MSBFirst:
		return "big"
	case LSBFirst:
		return "little"
	}
	return "unknown"
}

// ParseBitOrder converts an external configuration token to a BitOrder.
func ParseBitOrder(s string) (BitOrder, error) {
	switch s {
	case "big":
		return MSBFirst, nil
	case "little":
		return LSBFirst, nil
	}
	return 0, fmt.Errorf("%w: bit order %q", ErrInvalidArgument, s)
}

// Layout describes the packed-byte view of a raster. The zero value is the
// most common layout: byte-aligned rows padded on the right, row-major, msb
// leftmost, no byte swap, derived stride, one bit per pixel.
type Layout struct {
	Align     Align
	ByteOrder ByteOrder
	BitOrder  BitOrder

	// ByteSwap reverses byte order within groups of this many bytes, to
	// undo word-level endianness before row extraction. 0 or 1 disables it.
	ByteSwap int

	// Stride is the number of pixel columns represented on disk per row,
	// which may exceed the raster width due to alignment padding. 0 derives
	// the smallest stride that satisfies the alignment.
	Stride int

	// BitsPerPixel is the packed field width: 1, 2, 4 or 8. 0 means 1.
	BitsPerPixel int
}

func (l Layout) bpp() (int, error) {
	switch l.BitsPerPixel {
	case 0, 1:
		return 1, nil
	case 2, 4, 8:
		return l.BitsPerPixel, nil
	}
	return 0, fmt.Errorf(
		"%w: %d bits per pixel", ErrUnsupportedDepth, l.BitsPerPixel,
	)
}

// Raster is an immutable rectangular grid of ink-level ordinals, stored top
// row first. The zero value is an empty two-level raster.
type Raster struct {
	pixels [][]uint8
	width  int
	levels int
}

// rasterOf wraps already-validated rows without copying. The rows must not
// be aliased by the caller afterwards.
func rasterOf(pixels [][]uint8, width, levels int) Raster {
	return Raster{pixels: pixels, width: width, levels: levels}
}

// New creates a raster from a matrix of ink ordinals. All rows must share
// one width and every ordinal must lie in [0, levels); levels must be one
// of 2, 4, 16 or 256. The rows are copied.
func New(rows [][]uint8, levels int) (Raster, error) {
	if _, err := bitsPerPixel(levels); err != nil {
		return Raster{}, err
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	px := make([][]uint8, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Raster{}, fmt.Errorf(
				"%w: row %d has %d pixels, want %d",
				ErrShapeMismatch, i, len(row), width,
			)
		}
		for _, p := range row {
			if int(p) >= levels {
				return Raster{}, fmt.Errorf(
					"%w: ordinal %d out of range for %d levels",
					ErrInvalidArgument, p, levels,
				)
			}
		}
		px[i] = append([]uint8(nil), row...)
	}
	return rasterOf(px, width, levels), nil
}

// Blank creates an uninked raster. A zero height with nonzero width is
// valid and acts as an identity value in composition.
func Blank(width, height, levels int) (Raster, error) {
	if _, err := bitsPerPixel(levels); err != nil {
		return Raster{}, err
	}
	if width < 0 || height < 0 {
		return Raster{}, fmt.Errorf(
			"%w: raster size %dx%d", ErrInvalidArgument, width, height,
		)
	}
	return blankRaster(width, height, levels), nil
}

func blankRaster(width, height, levels int) Raster {
	rows := make([][]uint8, height)
	for i := range rows {
		rows[i] = make([]uint8, width)
	}
	return rasterOf(rows, width, levels)
}

// blankLike returns an uninked raster at the receiver's bit depth.
func (r Raster) blankLike(width, height int) Raster {
	return blankRaster(width, height, r.Levels())
}

// Width returns the pixel column count.
func (r Raster) Width() int {
	return r.width
}

// Height returns the pixel row count.
func (r Raster) Height() int {
	return len(r.pixels)
}

// Levels returns the number of ink levels the raster can represent.
func (r Raster) Levels() int {
	if r.levels == 0 {
		return 2
	}
	return r.levels
}

// Depth returns the intrinsic field width in bits per pixel.
func (r Raster) Depth() int {
	bpp, _ := bitsPerPixel(r.Levels())
	return bpp
}

// Equal reports whether two rasters have the same size, level count and
// pixel contents.
func (r Raster) Equal(other Raster) bool {
	if r.width != other.width || r.Height() != other.Height() ||
		r.Levels() != other.Levels() {
		return false
	}
	for y, row := range r.pixels {
		for x, p := range row {
			if p != other.pixels[y][x] {
				return false
			}
		}
	}
	return true
}

// IsBlank reports whether the raster carries no ink.
func (r Raster) IsBlank() bool {
	for _, row := range r.pixels {
		for _, p := range row {
			if p != 0 {
				return false
			}
		}
	}
	return true
}

// Mask returns the set of inked cells in row-major reading order. The mask
// is freshly allocated on each call and may be mutated by the caller.
func (r Raster) Mask() *bitset.BitSet {
	m := bitset.New(uint(r.width * r.Height()))
	i := uint(0)
	for _, row := range r.pixels {
		for _, p := range row {
			if p != 0 {
				m.Set(i)
			}
			i++
		}
	}
	return m
}

// fromMask builds a raster of the receiver's shape and depth from an
// ink-presence mask, with every inked cell at full ink.
func (r Raster) fromMask(m *bitset.BitSet) Raster {
	ink := uint8(r.Levels() - 1)
	rows := make([][]uint8, r.Height())
	i := uint(0)
	for y := range rows {
		row := make([]uint8, r.width)
		for x := range row {
			if m.Test(i) {
				row[x] = ink
			}
			i++
		}
		rows[y] = row
	}
	return rasterOf(rows, r.width, r.Levels())
}

// Bounds holds offsets from each raster edge, in the order left, bottom,
// right, top.
type Bounds struct {
	Left, Bottom, Right, Top int
}

// Padding returns the offsets from the raster edges to the ink bounding
// box. A blank raster pads the full extent on the left and bottom.
func (r Raster) Padding() Bounds {
	if r.Height() == 0 {
		return Bounds{}
	}
	top, bottom := -1, -1
	left, right := r.width, -1
	for y, row := range r.pixels {
		for x, p := range row {
			if p == 0 {
				continue
			}
			if top < 0 {
				top = y
			}
			bottom = y
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
		}
	}
	if top < 0 {
		return Bounds{Left: r.width, Bottom: r.Height()}
	}
	return Bounds{
		Left:   left,
		Bottom: r.Height() - 1 - bottom,
		Right:  r.width - 1 - right,
		Top:    top,
	}
}

// deinterleave undoes a column-major byte layout: the result is the
// concatenation of every height-th byte starting at offsets 0..height-1.
func deinterleave(src []byte, height int) []byte {
	out := make([]byte, 0, len(src))
	for offs := 0; offs < height; offs++ {
		for i := offs; i < len(src); i += height {
			out = append(out, src[i])
		}
	}
	return out
}

// interleave converts a row-major buffer to column-major order. The buffer
// length need not be a multiple of height; trailing bytes distribute the
// same way deinterleave collects them.
func interleave(src []byte, height int) []byte {
	out := make([]byte, len(src))
	pos := 0
	for offs := 0; offs < height; offs++ {
		for i := offs; i < len(src); i += height {
			out[i] = src[pos]
			pos++
		}
	}
	return out
}

// FromBytes decodes a packed byte buffer into a raster of the given size.
// The layout controls every axis of the packing independently: bits per
// pixel, row alignment, stride, byte order, byte-group swap and per-byte
// bit order. The buffer must cover stride*height pixels once reordered, or
// FromBytes fails with ErrInsufficientData; callers may pre-pad with zero.
func FromBytes(src []byte, width, height int, layout Layout) (Raster, error) {
	bpp, err := layout.bpp()
	if err != nil {
		return Raster{}, err
	}
	levels := 1 << uint(bpp)
	if width < 0 || height < 0 {
		return Raster{}, fmt.Errorf(
			"%w: raster size %dx%d", ErrInvalidArgument, width, height,
		)
	}
	if layout.ByteSwap < 0 || layout.Stride < 0 {
		return Raster{}, fmt.Errorf(
			"%w: negative layout parameter", ErrInvalidArgument,
		)
	}
	if width == 0 || height == 0 {
		return blankRaster(width, height, levels), nil
	}

	buf := src
	if layout.ByteSwap > 1 {
		buf = swapBytes(buf, layout.ByteSwap)[:len(src)]
	}
	if layout.ByteOrder == ColumnMajor && layout.Align != AlignBit {
		buf = deinterleave(buf, height)
	}
	px, err := DecodeOrdinals(buf, levels)
	if err != nil {
		return Raster{}, err
	}
	if layout.BitOrder == LSBFirst {
		px = ReverseByGroup(px, 8/bpp)
	}

	stride := layout.Stride
	if stride == 0 {
		if layout.Align == AlignBit {
			stride = width
		} else {
			stride = ceilDiv(width*bpp, 8) * (8 / bpp)
		}
	}
	if stride < width {
		return Raster{}, fmt.Errorf(
			"%w: stride %d narrower than width %d",
			ErrInvalidArgument, stride, width,
		)
	}
	if len(px) < stride*height {
		return Raster{}, fmt.Errorf(
			"%w: have %d pixels, need %d",
			ErrInsufficientData, len(px), stride*height,
		)
	}

	offset := 0
	if layout.Align == AlignRight {
		offset = stride - width
	}
	rows := make([][]uint8, height)
	for i := range rows {
		start := i*stride + offset
		rows[i] = append([]uint8(nil), px[start:start+width]...)
	}
	return rasterOf(rows, width, levels), nil
}

// AsBytes packs the raster into a byte buffer under the given layout,
// mirroring FromBytes. The requested bits per pixel may exceed the
// intrinsic depth; each ordinal is then replicated to fill the wider field
// (a 1-bpp ink pixel written at 2 bpp becomes 0b11), so that no partial
// intensities are introduced.
func (r Raster) AsBytes(layout Layout) ([]byte, error) {
	bpp, err := layout.bpp()
	if err != nil {
		return nil, err
	}
	intrinsic := r.Depth()
	if bpp < intrinsic {
		return nil, fmt.Errorf(
			"%w: cannot pack %d-level raster at %d bits per pixel",
			ErrUnsupportedDepth, r.Levels(), bpp,
		)
	}
	if layout.ByteSwap < 0 || layout.Stride < 0 {
		return nil, fmt.Errorf(
			"%w: negative layout parameter", ErrInvalidArgument,
		)
	}
	stride := layout.Stride
	if stride == 0 {
		stride = r.width
	}
	if stride < r.width {
		return nil, fmt.Errorf(
			"%w: stride %d narrower than width %d",
			ErrInvalidArgument, stride, r.width,
		)
	}

	work := r
	if bpp > intrinsic {
		// Replicate each ordinal across the wider field by stretching
		// horizontally, never by shifting into unset bits.
		ratio := bpp / intrinsic
		work, err = work.Stretch(ratio, 1)
		if err != nil {
			return nil, err
		}
		stride *= ratio
		bpp = intrinsic
	}
	if work.Height() == 0 || work.width == 0 {
		return []byte{}, nil
	}
	if stride > work.width {
		if layout.Align == AlignRight {
			work, err = work.Expand(stride-work.width, 0, 0, 0)
		} else {
			work, err = work.Expand(0, 0, stride-work.width, 0)
		}
		if err != nil {
			return nil, err
		}
	}

	levels := 1 << uint(bpp)
	perByte := 8 / bpp
	var out []byte
	if layout.Align == AlignBit {
		flat := make([]uint8, 0, work.width*work.Height())
		for _, row := range work.pixels {
			flat = append(flat, row...)
		}
		if layout.BitOrder == LSBFirst {
			flat = ReverseByGroup(flat, perByte)
		}
		out, err = EncodeOrdinals(flat, levels)
		if err != nil {
			return nil, err
		}
	} else {
		rowPx := ceilDiv(work.width, perByte) * perByte
		out = make([]byte, 0, (rowPx/perByte)*work.Height())
		for _, row := range work.pixels {
			padded := make([]uint8, rowPx)
			if layout.Align == AlignRight {
				copy(padded[rowPx-len(row):], row)
			} else {
				copy(padded, row)
			}
			if layout.BitOrder == LSBFirst {
				padded = ReverseByGroup(padded, perByte)
			}
			rowBytes, err := EncodeOrdinals(padded, levels)
			if err != nil {
				return nil, err
			}
			out = append(out, rowBytes...)
		}
		if layout.ByteOrder == ColumnMajor {
			out = interleave(out, work.Height())
		}
	}
	if layout.ByteSwap > 1 {
		out = swapBytes(out, layout.ByteSwap)
	}
	return out, nil
}

// ByteSize returns the exact length of the buffer AsBytes would produce
// under the given layout, without materializing it.
func (r Raster) ByteSize(layout Layout) (int, error) {
	bpp, err := layout.bpp()
	if err != nil {
		return 0, err
	}
	if bpp < r.Depth() {
		return 0, fmt.Errorf(
			"%w: cannot pack %d-level raster at %d bits per pixel",
			ErrUnsupportedDepth, r.Levels(), bpp,
		)
	}
	if r.Height() == 0 || r.width == 0 {
		return 0, nil
	}
	stride := layout.Stride
	if stride == 0 {
		stride = r.width
	}
	var n int
	if layout.Align == AlignBit {
		n = ceilDiv(stride*r.Height()*bpp, 8)
	} else {
		n = ceilDiv(stride*bpp, 8) * r.Height()
	}
	if layout.ByteSwap > 1 {
		n = ceilDiv(n, layout.ByteSwap) * layout.ByteSwap
	}
	return n, nil
}

// FromHex decodes a hex string through FromBytes.
func FromHex(s string, width, height int, layout Layout) (Raster, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return FromBytes(b, width, height, layout)
}

// AsHex packs the raster through AsBytes and returns the hex encoding.
func (r Raster) AsHex(layout Layout) (string, error) {
	b, err := r.AsBytes(layout)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// FromMatrix creates a raster from a matrix of symbols, mapped through an
// ink-level alphabet. The alphabet lists one distinct symbol per ordinal,
// paper first; its length fixes the level count.
func FromMatrix[T comparable](rows [][]T, inklevels []T) (Raster, error) {
	index, err := alphabetIndex(inklevels)
	if err != nil {
		return Raster{}, err
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	px := make([][]uint8, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Raster{}, fmt.Errorf(
				"%w: row %d has %d pixels, want %d",
				ErrShapeMismatch, i, len(row), width,
			)
		}
		out := make([]uint8, width)
		for j, sym := range row {
			ord, ok := index[sym]
			if !ok {
				return Raster{}, fmt.Errorf(
					"%w: symbol %v not in ink alphabet",
					ErrInvalidArgument, sym,
				)
			}
			out[j] = ord
		}
		px[i] = out
	}
	return rasterOf(px, width, len(inklevels)), nil
}

// FromVector creates a raster from a flat sequence of symbols, sliced into
// rows of stride symbols each and cropped to width under the given
// alignment. Bit-packed formats with no inter-row padding decode through
// this after unpacking.
func FromVector[T comparable](
	vec []T,
	inklevels []T,
	stride, width, height int,
	align Align,
) (Raster, error) {
	index, err := alphabetIndex(inklevels)
	if err != nil {
		return Raster{}, err
	}
	if stride < 0 || width < 0 || height < 0 {
		return Raster{}, fmt.Errorf(
			"%w: negative geometry", ErrInvalidArgument,
		)
	}
	if width == 0 || height == 0 || stride == 0 {
		return blankRaster(width, height, len(inklevels)), nil
	}
	if stride < width {
		return Raster{}, fmt.Errorf(
			"%w: stride %d narrower than width %d",
			ErrInvalidArgument, stride, width,
		)
	}
	if len(vec) < stride*height {
		return Raster{}, fmt.Errorf(
			"%w: have %d symbols, need %d",
			ErrInsufficientData, len(vec), stride*height,
		)
	}
	offset := 0
	if align == AlignRight {
		offset = stride - width
	}
	px := make([][]uint8, height)
	for i := range px {
		row := make([]uint8, width)
		for j := range row {
			sym := vec[i*stride+offset+j]
			ord, ok := index[sym]
			if !ok {
				return Raster{}, fmt.Errorf(
					"%w: symbol %v not in ink alphabet",
					ErrInvalidArgument, sym,
				)
			}
			row[j] = ord
		}
		px[i] = row
	}
	return rasterOf(px, width, len(inklevels)), nil
}

func alphabetIndex[T comparable](inklevels []T) (map[T]uint8, error) {
	if _, err := bitsPerPixel(len(inklevels)); err != nil {
		return nil, err
	}
	index := make(map[T]uint8, len(inklevels))
	for i, sym := range inklevels {
		if _, dup := index[sym]; dup {
			return nil, fmt.Errorf(
				"%w: duplicate symbol %v in ink alphabet",
				ErrInvalidArgument, sym,
			)
		}
		index[sym] = uint8(i)
	}
	return index, nil
}

// Matrix returns a copy of the ordinal grid, top row first.
func (r Raster) Matrix() [][]uint8 {
	rows := make([][]uint8, r.Height())
	for i, row := range r.pixels {
		rows[i] = append([]uint8(nil), row...)
	}
	return rows
}

// MatrixOf re-expresses the grid through an ink-level alphabet of exactly
// Levels symbols: booleans, color values, runes, or any other per-level
// representation. No information is lost; FromMatrix with the same alphabet
// reverses it.
func MatrixOf[T any](r Raster, inklevels []T) ([][]T, error) {
	if len(inklevels) != r.Levels() {
		return nil, fmt.Errorf(
			"%w: alphabet has %d symbols, raster has %d levels",
			ErrInvalidArgument, len(inklevels), r.Levels(),
		)
	}
	rows := make([][]T, r.Height())
	for i, row := range r.pixels {
		out := make([]T, len(row))
		for j, p := range row {
			out[j] = inklevels[p]
		}
		rows[i] = out
	}
	return rows, nil
}

// VectorOf returns the grid as a flat sequence in reading order, expressed
// through an ink-level alphabet of exactly Levels symbols.
func VectorOf[T any](r Raster, inklevels []T) ([]T, error) {
	if len(inklevels) != r.Levels() {
		return nil, fmt.Errorf(
			"%w: alphabet has %d symbols, raster has %d levels",
			ErrInvalidArgument, len(inklevels), r.Levels(),
		)
	}
	out := make([]T, 0, r.width*r.Height())
	for _, row := range r.pixels {
		for _, p := range row {
			out = append(out, inklevels[p])
		}
	}
	return out, nil
}

// AsText renders the raster as text, one rune per pixel drawn from an
// alphabet of exactly Levels runes, with each row wrapped in the start and
// end separators. A zero-height raster renders as the empty string.
func (r Raster) AsText(inklevels, start, end string) (string, error) {
	symbols := []rune(inklevels)
	if len(symbols) != r.Levels() {
		return "", fmt.Errorf(
			"%w: alphabet has %d symbols, raster has %d levels",
			ErrInvalidArgument, len(symbols), r.Levels(),
		)
	}
	var sb strings.Builder
	for _, row := range r.pixels {
		sb.WriteString(start)
		for _, p := range row {
			sb.WriteRune(symbols[p])
		}
		sb.WriteString(end)
	}
	return sb.String(), nil
}

// AsBlocks renders the raster as Unicode block characters, one per cell of
// ncols by nrows pixels. See blocks.Render for the supported resolutions.
func (r Raster) AsBlocks(ncols, nrows int) (string, error) {
	if r.Height() == 0 {
		return "", nil
	}
	return blocks.Render(r.Matrix(), ncols, nrows)
}

// String renders the raster with a default alphabet, for debugging.
func (r Raster) String() string {
	alphabet := map[int]string{
		2:   ".@",
		4:   ".-+@",
		16:  ".123456789abcde@",
		256: "",
	}[r.Levels()]
	if alphabet == "" {
		return fmt.Sprintf("Raster(%dx%d, %d levels)",
			r.width, r.Height(), r.Levels())
	}
	text, _ := r.AsText(alphabet, "", "\n")
	return text
}
