package opendot

import (
	"math"
	"sort"

	"golang.org/x/text/width"
)

// Charset is a density palette. Index 0 carries the least ink and the last
// index the most.
type Charset []rune

var (
	CharsetStandard = Charset(" .:-=+*#%@")
	CharsetDetailed = Charset(" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$")
	CharsetBlocks   = Charset(" ░▒▓█")
	CharsetBinary   = Charset(" #")
	CharsetBraille  = BrailleRamp()
)

var charsets = map[string]Charset{
	"standard": CharsetStandard,
	"detailed": CharsetDetailed,
	"blocks":   CharsetBlocks,
	"binary":   CharsetBinary,
	"braille":  CharsetBraille,
}

// LookupCharset returns the named preset.
func LookupCharset(name string) (Charset, bool) {
	cs, ok := charsets[name]
	return cs, ok
}

// CharsetNames lists the preset names in alphabetical order.
func CharsetNames() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cs Charset) String() string {
	return string(cs)
}

// WideRunes reports the runes of cs that occupy two terminal cells. A grid
// containing them will not line up in a monospaced font.
func (cs Charset) WideRunes() []rune {
	var wide []rune
	for _, r := range cs {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			wide = append(wide, r)
		}
	}
	return wide
}

// MapValueToChar quantizes v onto cs. With invert unset, v=0 maps to the
// last (densest) rune and v=1 to the first; invert swaps the ends.
// cs must not be empty.
func MapValueToChar(v float64, cs Charset, invert bool) rune {
	v = clamp(v, 0, 1)
	index := int(roundHalfUp(v * float64(len(cs)-1)))
	if invert {
		return cs[index]
	}
	return cs[len(cs)-1-index]
}

// roundHalfUp rounds halves toward positive infinity for negative inputs too,
// which math.Round does not.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
