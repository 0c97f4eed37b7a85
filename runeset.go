package pslcore

import (
	"strings"

	"github.com/karlseguin/intset"
)

// labelSeparators lists the Unicode code points RFC 3490 treats as
// equivalent to the ASCII full stop when splitting a hostname into
// labels: U+002E FULL STOP, U+3002 IDEOGRAPHIC FULL STOP, U+FF0E
// FULLWIDTH FULL STOP, U+FF61 HALFWIDTH IDEOGRAPHIC FULL STOP.
const labelSeparators string = ".。．｡"

// maxLabelSeparatorRune bounds the intset.Rune bitset; no rune in
// labelSeparators exceeds it (U+FF61 is the largest).
const maxLabelSeparatorRune = 0xff61

var labelSeparatorRuneSet = makeRuneSet(labelSeparators)

// makeRuneSet builds a membership set over the runes in chars.
func makeRuneSet(chars string) *intset.Rune {
	rs := intset.NewRune(maxLabelSeparatorRune)
	for _, r := range chars {
		rs.Set(r)
	}
	return rs
}

// isLabelSeparator reports whether r is one of the Unicode label
// separators recognized alongside the ASCII '.'.
func isLabelSeparator(r rune) bool {
	return r <= maxLabelSeparatorRune && labelSeparatorRuneSet.Exists(r)
}

// normalizeLabelSeparators rewrites any non-ASCII Unicode label
// separator in s to the ASCII '.', the way the teacher's
// standardLabelSeparatorReplacer normalizes internationalized label
// separators before further processing. Used when ingesting PSL rule
// lines, never on query hostnames (those are the matcher's caller's
// responsibility per spec.md §4.3).
func normalizeLabelSeparators(s string) string {
	if !strings.ContainsAny(s, "。．｡") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != '.' && isLabelSeparator(r) {
			b.WriteByte('.')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
