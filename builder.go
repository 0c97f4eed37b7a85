package pslcore

import (
	"bytes"
	"strings"

	"github.com/elliotwutingfeng/hashmap"
)

// Node flag bits, packed into bits [8,16) of a serialized node's first
// word (spec.md §3).
const (
	flagTerminus  byte = 0x01 // IS_RULE_TERMINUS
	flagException byte = 0x02 // IS_EXCEPTION
	flagPrivate   byte = 0x04 // IS_PRIVATE (SPEC_FULL.md §3 supplement)
)

// ruleNode is a transient, builder-internal tree node: one DNS label on
// the path from the root to some rule. Discarded once Parse finishes
// serializing into the Buffer.
type ruleNode struct {
	label    []byte
	flags    byte
	children []*ruleNode
}

// compareLabels implements the length-major ordering from spec.md
// §4.2: compare lengths first, then lexicographically by byte.
func compareLabels(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

// findChildIndex binary searches n's children for label, returning the
// insertion point and whether an exact match was found.
func (n *ruleNode) findChildIndex(label []byte) (int, bool) {
	lo, hi := 0, len(n.children)
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := compareLabels(n.children[mid].label, label); {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

// childOrInsert returns n's child for label, creating and inserting it
// at the correct sorted position if it doesn't already exist.
func (n *ruleNode) childOrInsert(label []byte) *ruleNode {
	idx, found := n.findChildIndex(label)
	if found {
		return n.children[idx]
	}
	child := &ruleNode{label: append([]byte(nil), label...)}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	return child
}

// insertRule walks labels (already ordered right-to-left, TLD first)
// from root, creating nodes as needed, and marks the terminal node.
func insertRule(root *ruleNode, labels []string, exception, private bool) {
	node := root
	for _, lbl := range labels {
		node = node.childOrInsert([]byte(lbl))
	}
	node.flags |= flagTerminus
	if exception {
		node.flags |= flagException
	}
	if private {
		node.flags |= flagPrivate
	}
}

// reverseStrings reverses ss in place.
func reverseStrings(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}

const (
	privateBeginMarker = "// ===BEGIN PRIVATE DOMAINS==="
	privateEndMarker   = "// ===END PRIVATE DOMAINS==="
	maxRuleLabelLength = 253 // RFC 1035 hostname cap
)

// splitPSLLines splits text on any run of \n or \r, the way spec.md
// step 1 asks for ("split on \n or \r, either terminator"), tolerating
// CRLF, lone CR, and lone LF line endings uniformly.
func splitPSLLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

// Parse populates l's Buffer from the raw text of a PSL file, per
// spec.md §4.2. It never fails: malformed lines are silently skipped,
// matching the PSL convention and spec.md §7.
//
// toASCII converts any rule line containing bytes outside
// [*a-z0-9.-] into ASCII (typically via punycode); a typical caller
// supplies golang.org/x/net/idna.ToASCII.
func (l *PublicSuffixList) Parse(text string, toASCII ToASCIIFunc) {
	root := &ruleNode{}
	// spec.md step 3: the default wildcard rule is always installed,
	// encoding PSL algorithm step 2 (fallback rule).
	insertRule(root, []string{"*"}, false, false)

	private := false
	for _, raw := range splitPSLLines(text) {
		trimmedRaw := strings.TrimSpace(raw)
		if trimmedRaw == privateBeginMarker {
			private = true
			continue
		}
		if trimmedRaw == privateEndMarker {
			private = false
			continue
		}

		line := trimmedRaw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		exception := false
		if line[0] == '!' {
			exception = true
			line = line[1:]
		}

		lowered := normalizeLabelSeparators(lowerASCII(line))
		if isPlainRuleBytes(lowered) {
			line = lowered
		} else {
			converted, err := toASCII(lowered)
			if err != nil {
				continue
			}
			line = converted
		}

		if len(line) == 0 || len(line) > maxRuleLabelLength {
			continue
		}

		labels := strings.Split(line, ".")
		reverseStrings(labels)
		insertRule(root, labels, exception, private)
	}

	l.serialize(root)
	l.lastHostname = ""
	l.prepared = false
}

// scratchWords is the scratch region expressed in 32-bit words.
const scratchWords = scratchLen / 4

// serializer turns a ruleNode tree into the flat word/byte layout from
// spec.md §3, deduplicating labels longer than 4 bytes into a shared
// character-data region.
type serializer struct {
	words        []uint32 // tree-region words; index 0 == absolute word scratchWords
	charData     []byte
	labelOffsets hashmap.Map[string, uint32]
}

// allocNodes reserves n contiguous node records and returns the
// absolute buffer word offset of the first one.
func (s *serializer) allocNodes(n int) uint32 {
	rel := len(s.words)
	s.words = append(s.words, make([]uint32, n*3)...)
	return uint32(scratchWords + rel)
}

func (s *serializer) toRel(abs uint32) int { return int(abs) - scratchWords }

// internLabel returns the character-data byte offset for label,
// appending it (deduplicated via labelOffsets) if not already present.
func (s *serializer) internLabel(label []byte) uint32 {
	key := string(label)
	if off, ok := s.labelOffsets.Get(key); ok {
		return off
	}
	off := uint32(len(s.charData))
	s.charData = append(s.charData, label...)
	s.labelOffsets.Set(key, off)
	return off
}

// serializeNode writes node's record at absWordOff, first allocating
// and recursing into a contiguous block for its children (spec.md step
// 5: "Depth-first, pre-allocate each node's record and recurse into
// its children").
func (s *serializer) serializeNode(node *ruleNode, absWordOff uint32) {
	var childrenOff uint32
	if len(node.children) > 0 {
		childrenOff = s.allocNodes(len(node.children))
	}

	rel := s.toRel(absWordOff)
	charLen := len(node.label)
	word0 := uint32(charLen&0xFF) | uint32(node.flags)<<8 | uint32(len(node.children))<<16

	var word1 uint32
	if charLen <= 4 {
		for i := 0; i < charLen; i++ {
			word1 |= uint32(node.label[i]) << uint(8*i)
		}
	} else {
		word1 = s.internLabel(node.label)
	}

	s.words[rel] = word0
	s.words[rel+1] = word1
	s.words[rel+2] = childrenOff

	for i, child := range node.children {
		s.serializeNode(child, childrenOff+uint32(i*3))
	}
}

// build serializes root and everything below it, returning the
// tree-region words, the character-data bytes, and the root's
// absolute word offset.
func (s *serializer) build(root *ruleNode) (treeWords []uint32, charData []byte, rootOff uint32) {
	rootOff = s.allocNodes(1)
	s.serializeNode(root, rootOff)
	return s.words, s.charData, rootOff
}

// serialize writes root's tree into l.buf, replacing any previous
// contents (spec.md §7: parse is a full replacement).
func (l *PublicSuffixList) serialize(root *ruleNode) {
	ser := &serializer{}
	treeWords, charData, rootOff := ser.build(root)

	charByteOff := scratchLen + len(treeWords)*4
	charByteOff = (charByteOff + 3) &^ 3
	total := charByteOff + len(charData)

	l.buf = Buffer{}
	l.buf.reserve(total)
	for i, w := range treeWords {
		l.buf.setWordAt(scratchWords+i, w)
	}
	copy(l.buf.byteView()[charByteOff:], charData)
	l.buf.setRootNodeWordOffset(rootOff)
	l.buf.setCharDataByteOffset(uint32(charByteOff))
}
