package ioutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// forbiddenChars are replaced with a space because they are reserved in
// path segments on at least one supported filesystem.
var forbiddenChars = strings.NewReplacer(
	`\`, " ",
	"/", " ",
	"*", " ",
	"?", " ",
	":", " ",
	`"`, " ",
	"<", " ",
	">", " ",
	"|", " ",
)

// pictographs covers the emoji and dingbat blocks stripped from metadata.
var pictographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x24c2, Hi: 0x24c2, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f170, Hi: 0x1f251, Stride: 1},
		{Lo: 0x1f300, Hi: 0x1f64f, Stride: 1},
		{Lo: 0x1f680, Hi: 0x1f6ff, Stride: 1},
		{Lo: 0x1f900, Hi: 0x1f9ff, Stride: 1},
		{Lo: 0x1fa70, Hi: 0x1faff, Stride: 1},
	},
}

// SanitizeFileName turns free text into a string usable as a single path
// segment.
//
// The following transformations are applied, in order:
//   - Unicode NFC normalization
//   - Reserved characters (\ / * ? : " < > |) → space
//   - Emoji, pictograph and dingbat code points → space
//   - Runs of whitespace → single space
//   - Leading/trailing whitespace → removed
//
// The function is total and idempotent:
// SanitizeFileName(SanitizeFileName(x)) == SanitizeFileName(x).
//
// Example:
//
//	SanitizeFileName(`A/B:C*D?E"F<G>H|I`)   // Returns "A B C D E F G H I"
//	SanitizeFileName("Hello😀 World 🎵")      // Returns "Hello World"
//	SanitizeFileName("  spaced   out  ")     // Returns "spaced out"
func SanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	name = norm.NFC.String(name)
	name = forbiddenChars.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.Is(pictographs, r) {
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}
