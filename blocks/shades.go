package blocks

import (
	"fmt"
	"strings"
)

// RGB is a truecolor shade.
type RGB struct {
	R, G, B uint8
}

// Lerp interpolates linearly from paper to ink by level out of levels-1.
func Lerp(paper, ink RGB, level, levels int) RGB {
	maxLevel := levels - 1
	if maxLevel < 1 {
		maxLevel = 1
	}
	if level > maxLevel {
		level = maxLevel
	}
	mix := func(p, i uint8) uint8 {
		return uint8((level*int(i) + (maxLevel-level)*int(p)) / maxLevel)
	}
	return RGB{mix(paper.R, ink.R), mix(paper.G, ink.G), mix(paper.B, ink.B)}
}

// Shades converts a matrix of ink levels to ANSI-colored text, one full
// block character per pixel, colored by linear interpolation between paper
// and ink. Negative values are the out-of-bounds sentinel: they render in
// the border color, or as a color reset and a space when border is nil.
func Shades(matrix [][]int, levels int, paper, ink RGB, border *RGB) string {
	var sb strings.Builder
	for _, row := range matrix {
		for _, level := range row {
			if level < 0 {
				if border == nil {
					sb.WriteString("\x1b[0m ")
					continue
				}
				sb.WriteString(cell(*border))
				continue
			}
			sb.WriteString(cell(Lerp(paper, ink, level, levels)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cell(shade RGB) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm█\x1b[0m", shade.R, shade.G, shade.B)
}
