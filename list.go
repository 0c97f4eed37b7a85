// Package pslcore implements the Public Suffix List matching algorithm
// over a compact, cache-friendly flat trie encoding.
//
// The encoding flattens the rule set into a single contiguous byte
// buffer addressed by 32-bit offsets, so it can be persisted, memory
// mapped, or moved across an FFI boundary without a relocation pass.
// Lookup walks a hostname label-by-label from right to left, binary
// searching each node's sorted children, honoring the PSL precedence
// rules: exception beats longest-match beats wildcard.
//
// A *PublicSuffixList is not safe for concurrent use: the first 512
// bytes of its Buffer are a per-query scratchpad written by prepare on
// every call. Share an instance across goroutines only behind a mutex,
// or clone the post-parse buffer per goroutine and query each clone
// independently.
package pslcore

// ToASCIIFunc converts a Unicode rule line into its ASCII form,
// typically via punycode. Only Parse calls it; the query methods never
// convert hostnames. Parse treats it as an opaque, trusted function:
// if it returns an invalid
// label, the byte comparisons downstream remain well-defined, just
// unlikely to match anything.
type ToASCIIFunc func(string) (string, error)

// PublicSuffixList is the in-memory PSL table plus per-query scratch
// state. The zero value is a valid, empty list: every query method
// returns the empty string / false until Parse or FromSelfie populates
// it.
type PublicSuffixList struct {
	buf Buffer

	// lastHostname caches the most recently prepared hostname so that
	// back-to-back queries against the same value skip re-normalizing
	// it (spec.md §4.3 "Caching").
	lastHostname string
	prepared     bool

	// matchImpl is the active lookup implementation: the reference
	// walker, or an enabled accelerator. See accelerator.go. A zero
	// value PublicSuffixList leaves this nil; publicSuffixPosition
	// defaults it to the reference implementation on first use.
	matchImpl positionFinder
}

// New returns an empty PublicSuffixList, ready for Parse or FromSelfie.
func New() *PublicSuffixList {
	l := &PublicSuffixList{}
	l.matchImpl = referenceMatcher{}
	return l
}

// MatchOptions configures MatchWithOptions. The zero value matches
// every rule regardless of its ICANN/private origin, identical to the
// unqualified query methods.
type MatchOptions struct {
	// ExcludePrivate skips rules that appeared after the PSL's
	// "===BEGIN PRIVATE DOMAINS===" marker.
	ExcludePrivate bool
}
