package pslcore

import "testing"

func TestBufferReserveGrowsAndPreserves(t *testing.T) {
	var b Buffer
	b.setWordAt(0, 0xDEADBEEF)
	b.reserve(64)
	if got := b.wordAt(0); got != 0xDEADBEEF {
		t.Errorf("wordAt(0) = %#x after reserve, want %#x", got, 0xDEADBEEF)
	}
	if b.len() < 64 {
		t.Errorf("len() = %d, want >= 64", b.len())
	}
}

func TestBufferRootAndCharDataOffsets(t *testing.T) {
	var b Buffer
	b.setRootNodeWordOffset(128)
	b.setCharDataByteOffset(600)
	if got := b.rootNodeWordOffset(); got != 128 {
		t.Errorf("rootNodeWordOffset() = %d, want 128", got)
	}
	if got := b.charDataByteOffset(); got != 600 {
		t.Errorf("charDataByteOffset() = %d, want 600", got)
	}
}

func TestBufferWildcardFallbackFlag(t *testing.T) {
	var b Buffer
	if b.wildcardFallback() {
		t.Errorf("wildcardFallback() = true on fresh Buffer, want false")
	}
	b.setWildcardFallback(true)
	if !b.wildcardFallback() {
		t.Errorf("wildcardFallback() = false after setWildcardFallback(true)")
	}
	b.setWildcardFallback(false)
	if b.wildcardFallback() {
		t.Errorf("wildcardFallback() = true after setWildcardFallback(false)")
	}
}

func TestBufferNodeAccessorsInlineLabel(t *testing.T) {
	var b Buffer
	const wordOff = 100
	word0 := uint32(3) | uint32(flagTerminus)<<8 | uint32(2)<<16
	var word1 uint32
	label := []byte("com")
	for i, c := range label {
		word1 |= uint32(c) << uint(8*i)
	}
	b.setWordAt(wordOff, word0)
	b.setWordAt(wordOff+1, word1)
	b.setWordAt(wordOff+2, 200)

	if got := b.nodeCharLen(wordOff); got != 3 {
		t.Errorf("nodeCharLen() = %d, want 3", got)
	}
	if got := b.nodeFlags(wordOff); got != flagTerminus {
		t.Errorf("nodeFlags() = %#x, want %#x", got, flagTerminus)
	}
	if got := b.nodeChildCount(wordOff); got != 2 {
		t.Errorf("nodeChildCount() = %d, want 2", got)
	}
	if got := b.nodeChildrenOffset(wordOff); got != 200 {
		t.Errorf("nodeChildrenOffset() = %d, want 200", got)
	}
	if got := string(b.nodeLabel(wordOff)); got != "com" {
		t.Errorf("nodeLabel() = %q, want %q", got, "com")
	}
}

func TestBufferNodeAccessorsInternedLabel(t *testing.T) {
	var b Buffer
	// Tree region start: word 101 is the char-data offset slot itself.
	const wordOff = scratchWords
	const charOff = 600
	label := "example"
	word0 := uint32(len(label)) | 0<<8 | 0<<16
	b.setWordAt(wordOff, word0)
	b.setWordAt(wordOff+1, 5) // offset within char-data region
	b.setCharDataByteOffset(charOff)
	b.reserve(charOff + 5 + len(label))
	copy(b.byteView()[charOff+5:], label)

	if got := string(b.nodeLabel(wordOff)); got != label {
		t.Errorf("nodeLabel() = %q, want %q", got, label)
	}
}
