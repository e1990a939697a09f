// Package blocks renders pixel matrices as text, either through Unicode
// block elements covering a fixed-size cell of pixels per character, or as
// ANSI-colored shades, one character per pixel.
package blocks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedResolution means a cell size with no block-element table.
var ErrUnsupportedResolution = errors.New("blocks: unsupported resolution")

// Resolution is the pixel cell covered by one output character, columns by
// rows. Supported: 1x1, 1x2, 1x3, 1x4, 2x1, 2x2, 2x3, 2x4.
type Resolution struct {
	Cols, Rows int
}

// Each table maps a cell bit pattern to its block character. Patterns read
// the cell row by row from the top left, first pixel in the lowest bit.
var tables = map[Resolution][]rune{}

// quadrants is the 2x2 table: one quadrant block per 4-bit pattern.
var quadrants = []rune{
	' ',      // ····
	'▘', // upper left
	'▝', // upper right
	'▀', // upper half
	'▖', // lower left
	'▌', // left half
	'▞', // diagonal
	'▛', // all but lower right
	'▗', // lower right
	'▚', // diagonal
	'▐', // right half
	'▜', // all but lower left
	'▄', // lower half
	'▙', // all but upper right
	'▟', // all but upper left
	'█', // full
}

// sextants builds the 2x3 table. The Legacy Computing sextant range leaves
// out the patterns already covered by half and full blocks elsewhere in
// Unicode; consecutive code points cover the remaining patterns in order,
// and the four gaps are filled with the dedicated glyphs afterwards.
func sextants() []rune {
	table := make([]rune, 64)
	next := rune(0x1fb00)
	for pattern := 1; pattern < 63; pattern++ {
		if pattern == 0b010101 || pattern == 0b101010 {
			continue
		}
		table[pattern] = next
		next++
	}
	table[0b000000] = ' '
	table[0b010101] = '▌' // left column
	table[0b101010] = '▐' // right column
	table[0b111111] = '█'
	return table
}

// brailleDots maps cell index (reading order) to Braille dot bit: dots 1-3
// run down the left column, 4-6 down the right, 7 and 8 are the bottom row.
var brailleDots = [8]int{0, 3, 1, 4, 2, 5, 6, 7}

// braille builds the 2x4 table by permuting cell bits into dot-numbering
// order before offsetting from the Braille base code point.
func braille() []rune {
	table := make([]rune, 256)
	for pattern := 0; pattern < 256; pattern++ {
		code := 0
		for i, dot := range brailleDots {
			code |= (pattern >> uint(i) & 1) << uint(dot)
		}
		table[pattern] = rune(0x2800 + code)
	}
	return table
}

// widen doubles each of n source pixels into both columns of a 2-wide cell
// pattern.
func widen(pattern, n int) int {
	wide := 0
	for i := 0; i < n; i++ {
		bit := pattern >> uint(i) & 1
		wide |= bit<<uint(2*i) | bit<<uint(2*i+1)
	}
	return wide
}

// narrowTable derives a 1-wide table from a 2-wide one by pixel doubling.
func narrowTable(wide []rune, n int) []rune {
	table := make([]rune, 1<<uint(n))
	for pattern := range table {
		table[pattern] = wide[widen(pattern, n)]
	}
	return table
}

func init() {
	sex := sextants()
	brl := braille()
	tables[Resolution{1, 1}] = []rune{' ', '█'}
	tables[Resolution{2, 2}] = quadrants
	tables[Resolution{2, 3}] = sex
	tables[Resolution{2, 4}] = brl
	// 2x1 doubles each pixel into both rows of the 2x2 cell.
	half := make([]rune, 4)
	for pattern := range half {
		half[pattern] = quadrants[pattern|pattern<<2]
	}
	tables[Resolution{2, 1}] = half
	tables[Resolution{1, 2}] = narrowTable(quadrants, 2)
	tables[Resolution{1, 3}] = narrowTable(sex, 3)
	tables[Resolution{1, 4}] = narrowTable(brl, 4)
}

// Render converts a matrix of ink values (zero is paper, nonzero is ink) to
// a string of block characters, one per cell of ncols by nrows pixels, rows
// separated and terminated by newlines. Cells running past the matrix edge
// are zero-filled.
func Render(matrix [][]uint8, ncols, nrows int) (string, error) {
	table, ok := tables[Resolution{ncols, nrows}]
	if !ok {
		return "", fmt.Errorf(
			"%w: %dx%d", ErrUnsupportedResolution, ncols, nrows,
		)
	}
	if len(matrix) == 0 {
		return "", nil
	}
	width := len(matrix[0])
	height := len(matrix)
	var sb strings.Builder
	for by := 0; by < ceilDiv(height, nrows); by++ {
		for bx := 0; bx < ceilDiv(width, ncols); bx++ {
			pattern := 0
			bit := 0
			for dy := 0; dy < nrows; dy++ {
				for dx := 0; dx < ncols; dx++ {
					y, x := by*nrows+dy, bx*ncols+dx
					if y < height && x < len(matrix[y]) && matrix[y][x] != 0 {
						pattern |= 1 << uint(bit)
					}
					bit++
				}
			}
			sb.WriteRune(table[pattern])
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func ceilDiv(num, den int) int {
	return (num + den - 1) / den
}
