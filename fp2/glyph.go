package fp2

import "unicode"

// glyphs maps a hex digit to the positions in Controls whose lamps, lit
// together, draw that digit on the button matrix.
var glyphs = map[rune][]int{
	'0': {0, 1, 2, 3, 4, 7, 11, 14, 15, 16, 17, 18},
	'1': {1, 2, 4, 6, 13, 15, 16, 17, 18},
	'2': {1, 2, 4, 7, 10, 12, 15, 16, 17, 18},
	'3': {1, 2, 4, 7, 8, 10, 11, 14, 16, 17},
	'4': {2, 5, 8, 10, 11, 12, 13, 14, 18},
	'5': {1, 2, 4, 7, 8, 13, 15, 16, 17, 18},
	'6': {0, 1, 2, 3, 4, 8, 10, 11, 14, 15, 16, 17, 18},
	'7': {0, 1, 2, 3, 7, 13, 16},
	'8': {0, 1, 2, 3, 5, 6, 12, 13, 15, 16, 17, 18},
	'9': {0, 1, 2, 3, 4, 7, 8, 10, 14, 15, 16, 17, 18},
	'A': {4, 5, 7, 10, 11, 12, 13, 14, 15, 18, 19, 23},
	'B': {4, 5, 6, 7, 10, 12, 13, 14, 15, 18, 20, 21, 22, 23},
	'C': {4, 5, 7, 10, 14, 15, 18, 20, 21, 22},
	'D': {4, 5, 6, 7, 10, 11, 14, 15, 18, 20, 21, 22, 23},
	'E': {4, 5, 6, 7, 13, 14, 15, 20, 21, 22, 23},
	'F': {4, 5, 6, 7, 13, 14, 15, 23},
}

// GlyphFor returns the Control indices that render c ('0'-'9', 'a'-'f',
// either case) as a dot-matrix pattern. Characters without a pattern
// report ok=false.
func GlyphFor(c rune) ([]int, bool) {
	g, ok := glyphs[unicode.ToUpper(c)]
	return g, ok
}
