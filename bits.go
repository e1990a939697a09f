package strike

import "fmt"

// ceilDiv returns num divided by den, rounded up.
func ceilDiv(num, den int) int {
	return (num + den - 1) / den
}

// bitsPerPixel returns the pixel field width for a level count.
func bitsPerPixel(levels int) (int, error) {
	switch levels {
	case 2:
		return 1, nil
	case 4:
		return 2, nil
	case 16:
		return 4, nil
	case 256:
		return 8, nil
	}
	return 0, fmt.Errorf("%w: %d levels", ErrUnsupportedDepth, levels)
}

// quadDigits maps a nibble to its two base-4 digits, high digit first.
var quadDigits = [16][2]uint8{
	{0, 0}, {0, 1}, {0, 2}, {0, 3},
	{1, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 0}, {2, 1}, {2, 2}, {2, 3},
	{3, 0}, {3, 1}, {3, 2}, {3, 3},
}

// DecodeOrdinals expands packed bytes into one ink ordinal per pixel,
// most significant field first. levels must be one of 2, 4, 16 or 256; each
// byte carries 8, 4, 2 or 1 pixels respectively. Empty input yields an
// empty slice.
func DecodeOrdinals(src []byte, levels int) ([]uint8, error) {
	bpp, err := bitsPerPixel(levels)
	if err != nil {
		return nil, err
	}
	px := make([]uint8, 0, len(src)*(8/bpp))
	switch bpp {
	case 8:
		px = append(px, src...)
	case 4:
		for _, b := range src {
			px = append(px, b>>4, b&0x0f)
		}
	case 2:
		for _, b := range src {
			hi, lo := quadDigits[b>>4], quadDigits[b&0x0f]
			px = append(px, hi[0], hi[1], lo[0], lo[1])
		}
	case 1:
		for _, b := range src {
			for shift := 7; shift >= 0; shift-- {
				px = append(px, (b>>uint(shift))&1)
			}
		}
	}
	return px, nil
}

// EncodeOrdinals packs ink ordinals into bytes, most significant field
// first, zero-padding on the least significant end to a full byte. Inverse
// of DecodeOrdinals. Ordinals must lie in [0, levels).
func EncodeOrdinals(px []uint8, levels int) ([]byte, error) {
	bpp, err := bitsPerPixel(levels)
	if err != nil {
		return nil, err
	}
	for i, p := range px {
		if int(p) >= levels {
			return nil, fmt.Errorf(
				"%w: ordinal %d at index %d out of range for %d levels",
				ErrInvalidArgument, p, i, levels,
			)
		}
	}
	perByte := 8 / bpp
	out := make([]byte, ceilDiv(len(px), perByte))
	for i, p := range px {
		shift := uint(8 - bpp - (i%perByte)*bpp)
		out[i/perByte] |= byte(p) << shift
	}
	return out, nil
}

// ReverseByGroup reverses pixel order within every group of the given size,
// right-padding with paper to a group boundary first. With group 8/bpp this
// converts between big and little per-byte bit order without re-deriving
// the base conversion.
func ReverseByGroup(px []uint8, group int) []uint8 {
	if group <= 1 {
		return append([]uint8(nil), px...)
	}
	out := make([]uint8, ceilDiv(len(px), group)*group)
	copy(out, px)
	for start := 0; start < len(out); start += group {
		for i, j := start, start+group-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// swapBytes reverses byte order within every group of the given size,
// right-padding with zero to a group boundary first.
func swapBytes(src []byte, group int) []byte {
	out := make([]byte, ceilDiv(len(src), group)*group)
	copy(out, src)
	for start := 0; start < len(out); start += group {
		for i, j := start, start+group-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
