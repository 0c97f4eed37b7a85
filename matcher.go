package pslcore

// positionFinder is the swappable lookup implementation behind
// publicSuffixPosition: the reference walker here, or an accelerator
// enabled via EnableAccelerator (accelerator.go). Both operate on the
// same Buffer layout and may only write the scratch region.
type positionFinder interface {
	publicSuffixPosition(l *PublicSuffixList) int32
}

// referenceMatcher is the pslcore-native implementation of
// public_suffix_position, spec.md §4.3.
type referenceMatcher struct{}

// maxHostnameLen clamps prepared hostnames, per spec.md §4.3.
const maxHostnameLen = 255

// prepare writes a normalized copy of hostname into the scratch
// region and returns its length. A no-op when hostname is identical to
// the previously prepared one (spec.md §4.3 "Caching").
func (l *PublicSuffixList) prepare(hostname string) int {
	if l.prepared && l.lastHostname == hostname {
		return int(l.buf.byteView()[hostnameLenOffset])
	}

	if hostname == "" {
		l.buf.resetScratch()
		l.buf.setWildcardFallback(false)
		l.lastHostname = ""
		l.prepared = true
		return 0
	}

	lowered := lowerASCII(hostname)
	if len(lowered) > maxHostnameLen {
		lowered = lowered[:maxHostnameLen]
	}

	l.buf.writeHostnameAndIndex([]byte(lowered))
	l.buf.setWildcardFallback(false)
	l.lastHostname = hostname
	l.prepared = true
	return len(lowered)
}

// writeHostnameAndIndex writes hostname into scratch bytes [0,256),
// its length at byte 256, and the right-to-left label-index table
// starting at byte 257 (spec.md §3, §4.3).
func (b *Buffer) writeHostnameAndIndex(hostname []byte) {
	bv := b.byteView()
	n := len(hostname)
	copy(bv[0:hostnameRegionLen], hostname)
	for i := n; i < hostnameRegionLen; i++ {
		bv[i] = 0
	}
	bv[hostnameLenOffset] = byte(n)

	pos := labelIndexOffset + 1 // 257: first pair, past the length byte
	end := n
	for i := n - 1; i >= 0; i-- {
		if hostname[i] == '.' {
			bv[pos] = byte(end)
			bv[pos+1] = byte(i + 1)
			pos += 2
			end = i
		}
	}
	// Final (leftmost) label, begin always 0.
	bv[pos] = byte(end)
	bv[pos+1] = 0
	pos += 2
	// Terminator: zero-begin pair (spec.md §3).
	bv[pos] = 0
	bv[pos+1] = 0
}

// firstLabelIndexEntry is the byte offset of the first (rightmost
// label, the TLD) entry in the label-index table.
const firstLabelIndexEntry = labelIndexOffset + 1

// findChild binary searches node's children (length-major order, per
// spec.md §4.2) for label, returning the matched child's word offset.
func (b *Buffer) findChild(nodeOff uint32, label []byte) (uint32, bool) {
	childCount := b.nodeChildCount(nodeOff)
	if childCount == 0 {
		return 0, false
	}
	childrenOff := b.nodeChildrenOffset(nodeOff)
	lo, hi := 0, childCount
	for lo < hi {
		mid := (lo + hi) / 2
		childOff := childrenOff + uint32(mid*3)
		switch c := compareLabels(b.nodeLabel(childOff), label); {
		case c == 0:
			return childOff, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// publicSuffixPosition walks the tree and the label-index table in
// lock-step per spec.md §4.3, returning the byte offset within the
// label-index table marking the start of the longest matching rule,
// or -1 if no rule matched.
func (referenceMatcher) publicSuffixPosition(l *PublicSuffixList) int32 {
	b := &l.buf
	bv := b.byteView()
	nodeOff := b.rootNodeWordOffset()

	cursor := int32(-1)
	labelPtr := firstLabelIndexEntry
	consumed := 0

	for {
		end := int(bv[labelPtr])
		begin := int(bv[labelPtr+1])
		label := bv[begin:end]

		if b.nodeChildCount(nodeOff) == 0 {
			break
		}

		childOff, found := b.findChild(nodeOff, label)
		if !found {
			firstChildOff := b.nodeChildrenOffset(nodeOff)
			firstLabel := b.nodeLabel(firstChildOff)
			if len(firstLabel) == 1 && firstLabel[0] == '*' {
				childOff = firstChildOff
				found = true
				b.setWildcardFallback(true)
			}
		}
		if !found {
			break
		}
		nodeOff = childOff

		flags := b.nodeFlags(nodeOff)
		if flags&flagException != 0 {
			if consumed > 0 {
				return int32(labelPtr - 2)
			}
			return -1
		}

		if flags&flagTerminus != 0 {
			cursor = int32(labelPtr)
		}

		if begin == 0 {
			break
		}
		labelPtr += 2
		consumed++
	}

	return cursor
}

// publicSuffixPosition dispatches to the active implementation
// (reference or accelerator). A zero-value PublicSuffixList (one built
// without New, e.g. var l PublicSuffixList) has a nil matchImpl; default
// it to the reference implementation here so every query method stays
// panic-free per spec.md §7, matching the package doc comment's claim
// that the zero value is a valid, empty list.
func (l *PublicSuffixList) publicSuffixPosition() int32 {
	if l.matchImpl == nil {
		l.matchImpl = referenceMatcher{}
	}
	return l.matchImpl.publicSuffixPosition(l)
}

// PublicSuffix returns the longest public suffix of hostname, or the
// empty string if none matches (spec.md §4.3, §6).
func (l *PublicSuffixList) PublicSuffix(hostname string) string {
	if hostname == "" || hostname[0] == '.' || looksLikeIPLiteral(hostname) {
		return ""
	}
	n := l.prepare(hostname)
	pos := l.publicSuffixPosition()
	if pos < 0 {
		return ""
	}
	begin := int(l.buf.byteView()[pos+1])
	if begin == 0 {
		return string(l.buf.byteView()[0:n])
	}
	return string(l.buf.byteView()[begin:n])
}

// RegistrableDomain returns the public suffix of hostname plus one
// additional label, or the empty string if there is no such label
// (spec.md §4.3, §6).
func (l *PublicSuffixList) RegistrableDomain(hostname string) string {
	if hostname == "" || hostname[0] == '.' || looksLikeIPLiteral(hostname) {
		return ""
	}
	n := l.prepare(hostname)
	pos := l.publicSuffixPosition()
	if pos < 0 {
		return ""
	}
	bv := l.buf.byteView()
	begin := int(bv[pos+1])
	if begin == 0 {
		return ""
	}
	nextBegin := int(bv[pos+2+1])
	return string(bv[nextBegin:n])
}

// IsPublicSuffix reports whether hostname is itself exactly a public
// suffix: the whole hostname was consumed by the match and no step of
// the walk fell back to a "*" child. A wildcard step at any depth counts,
// so a hostname matched only through a listed wildcard rule such as
// "*.jp" also reports false (spec.md §4.3, §6).
func (l *PublicSuffixList) IsPublicSuffix(hostname string) bool {
	if hostname == "" || hostname[0] == '.' || looksLikeIPLiteral(hostname) {
		return false
	}
	l.prepare(hostname)
	l.buf.setWildcardFallback(false)
	pos := l.publicSuffixPosition()
	if pos < 0 {
		return false
	}
	begin := int(l.buf.byteView()[pos+1])
	return begin == 0 && !l.buf.wildcardFallback()
}

// MatchWithOptions behaves like PublicSuffix, RegistrableDomain and
// IsPublicSuffix combined, but lets the caller exclude private-section
// PSL rules (SPEC_FULL.md §3 supplement). It re-parses nothing; it
// simply re-walks the tree, never taking a node flagged IS_PRIVATE as
// the matched rule.
func (l *PublicSuffixList) MatchWithOptions(hostname string, opts MatchOptions) (suffix, registrable string, isSuffix bool) {
	if !opts.ExcludePrivate {
		return l.PublicSuffix(hostname), l.RegistrableDomain(hostname), l.IsPublicSuffix(hostname)
	}
	return l.publicSuffixExcludingPrivate(hostname)
}

// publicSuffixExcludingPrivate re-implements the §4.3 walk, refusing
// to record an IS_PRIVATE terminus as the match, so a private-section
// rule never shadows the nearest public (ICANN) ancestor rule. The walk
// still descends through private nodes, and an exception flag on a node
// is honoured whatever its section.
func (l *PublicSuffixList) publicSuffixExcludingPrivate(hostname string) (suffix, registrable string, isSuffix bool) {
	if hostname == "" || hostname[0] == '.' || looksLikeIPLiteral(hostname) {
		return "", "", false
	}
	n := l.prepare(hostname)
	b := &l.buf
	bv := b.byteView()
	nodeOff := b.rootNodeWordOffset()

	cursor := int32(-1)
	labelPtr := firstLabelIndexEntry
	consumed := 0
	wildcard := false

	for {
		end := int(bv[labelPtr])
		begin := int(bv[labelPtr+1])
		label := bv[begin:end]

		if b.nodeChildCount(nodeOff) == 0 {
			break
		}
		childOff, found := b.findChild(nodeOff, label)
		if !found {
			firstChildOff := b.nodeChildrenOffset(nodeOff)
			firstLabel := b.nodeLabel(firstChildOff)
			if len(firstLabel) == 1 && firstLabel[0] == '*' {
				childOff = firstChildOff
				found = true
				wildcard = true
			}
		}
		if !found {
			break
		}
		nodeOff = childOff
		flags := b.nodeFlags(nodeOff)
		if flags&flagException != 0 {
			if consumed > 0 {
				cursor = int32(labelPtr - 2)
			}
			break
		}
		if flags&flagTerminus != 0 && flags&flagPrivate == 0 {
			cursor = int32(labelPtr)
		}
		if begin == 0 {
			break
		}
		labelPtr += 2
		consumed++
	}

	if cursor < 0 {
		return "", "", false
	}
	begin := int(bv[cursor+1])
	if begin == 0 {
		suffix = string(bv[0:n])
	} else {
		suffix = string(bv[begin:n])
	}
	if begin != 0 {
		nextBegin := int(bv[cursor+2+1])
		registrable = string(bv[nextBegin:n])
	}
	isSuffix = begin == 0 && !wildcard
	return suffix, registrable, isSuffix
}
