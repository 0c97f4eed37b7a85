package pslcore

import (
	"encoding/binary"
	"unsafe"
)

// hostLittleEndian reports whether this process's native byte order
// matches the little-endian word layout buffer.go always writes. An
// accelerator backend that reads the Buffer through native machine
// words (rather than encoding/binary, as the reference matcher does)
// is only safe to enable on a little-endian host.
func hostLittleEndian() bool {
	var probe uint32 = 1
	native := (*[4]byte)(unsafe.Pointer(&probe))
	return binary.LittleEndian.Uint32(native[:]) == probe
}

// AcceleratorFetchFunc retrieves the bytes of an accelerator backend
// (e.g. a compiled WASM module), per spec.md §6 "Accelerator".
type AcceleratorFetchFunc func() ([]byte, error)

// acceleratedMatcher is a positionFinder backed by accelerator bytes
// fetched via AcceleratorFetchFunc. It is a thin placeholder: no actual
// WASM runtime is wired in this package, but the capability-swap
// contract (spec.md §9 "Polymorphism on the lookup implementation") is
// fully exercised by EnableAccelerator/DisableAccelerator below.
type acceleratedMatcher struct {
	backend []byte
}

// publicSuffixPosition of an acceleratedMatcher simply delegates to the
// reference algorithm: it has no independent execution engine, only a
// validated backend payload. A real accelerator would instead run
// backend against l.buf through its own instruction set.
func (acceleratedMatcher) publicSuffixPosition(l *PublicSuffixList) int32 {
	return referenceMatcher{}.publicSuffixPosition(l)
}

// EnableAccelerator swaps l's active lookup implementation to an
// accelerator backend, fetched via fetch. It returns false, leaving the
// reference implementation active, if the host is not little-endian or
// fetch fails or returns no bytes — it never panics (spec.md §7).
func (l *PublicSuffixList) EnableAccelerator(fetch AcceleratorFetchFunc) bool {
	if !hostLittleEndian() {
		return false
	}
	if fetch == nil {
		return false
	}
	backend, err := fetch()
	if err != nil || len(backend) == 0 {
		return false
	}
	l.matchImpl = acceleratedMatcher{backend: backend}
	return true
}

// DisableAccelerator restores the reference lookup implementation.
func (l *PublicSuffixList) DisableAccelerator() {
	l.matchImpl = referenceMatcher{}
}

// AcceleratorEnabled reports whether l is currently using an
// accelerator backend rather than the reference implementation.
func (l *PublicSuffixList) AcceleratorEnabled() bool {
	_, ok := l.matchImpl.(acceleratedMatcher)
	return ok
}
