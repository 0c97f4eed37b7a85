package pslcore

import (
	"bytes"
	"strings"
	"testing"
)

// TestInvariantRegistrableDomainShape covers invariant 2: every non-empty
// registrable_domain is label + "." + public_suffix, with a dotless label.
func TestInvariantRegistrableDomainShape(t *testing.T) {
	l := newScenarioList(t)
	hosts := []string{"www.example.com", "a.b.example.co.uk", "foo.bar.jp", "city.kawasaki.jp", "www.city.kawasaki.jp"}
	for _, h := range hosts {
		suffix := l.PublicSuffix(h)
		registrable := l.RegistrableDomain(h)
		if registrable == "" {
			continue
		}
		if !strings.HasSuffix(registrable, "."+suffix) {
			t.Errorf("registrable_domain(%q) = %q is not of the form label.%q", h, registrable, suffix)
		}
		label := strings.TrimSuffix(registrable, "."+suffix)
		if label == "" || strings.Contains(label, ".") {
			t.Errorf("registrable_domain(%q) = %q has an invalid leading label %q", h, registrable, label)
		}
	}
}

// TestInvariantScratchIsolation covers invariant 8: polluting scratch
// bytes beyond what prepare itself writes must not change query results,
// since every query starts with a fresh prepare call. Scratch words 100
// and 101 are left intact: Parse stores the root and character-data
// offsets there, and every lookup reads them.
func TestInvariantScratchIsolation(t *testing.T) {
	l := newScenarioList(t)
	want := l.PublicSuffix("www.example.com")

	for i := 0; i < scratchLen; i++ {
		if i >= rootWordOffset*4 && i < (charDataWordOffset+1)*4 {
			continue
		}
		l.buf.byteView()[i] = 0xAA
	}
	l.prepared = false
	l.lastHostname = ""

	got := l.PublicSuffix("www.example.com")
	if got != want {
		t.Errorf("PublicSuffix after scratch pollution = %q, want %q", got, want)
	}
}

// TestInvariantSnapshotRoundTrip covers invariant 5: from_selfie(to_selfie())
// reproduces identical query results to the original.
func TestInvariantSnapshotRoundTrip(t *testing.T) {
	original := newScenarioList(t)

	selfie := original.ToSelfie()
	restored := New()
	if err := restored.FromSelfie(selfie); err != nil {
		t.Fatalf("FromSelfie: %v", err)
	}

	for _, tc := range scenarioTests {
		if got, want := restored.PublicSuffix(tc.hostname), original.PublicSuffix(tc.hostname); got != want {
			t.Errorf("restored.PublicSuffix(%q) = %q, want %q", tc.hostname, got, want)
		}
		if got, want := restored.RegistrableDomain(tc.hostname), original.RegistrableDomain(tc.hostname); got != want {
			t.Errorf("restored.RegistrableDomain(%q) = %q, want %q", tc.hostname, got, want)
		}
		if got, want := restored.IsPublicSuffix(tc.hostname), original.IsPublicSuffix(tc.hostname); got != want {
			t.Errorf("restored.IsPublicSuffix(%q) = %t, want %t", tc.hostname, got, want)
		}
	}
}

// TestInvariantStringSnapshotRoundTrip covers the string snapshot form
// with the default base64 codec.
func TestInvariantStringSnapshotRoundTrip(t *testing.T) {
	original := newScenarioList(t)
	encoded := original.ToSelfieString(nil)

	restored := New()
	if err := restored.FromSelfieString(encoded, nil); err != nil {
		t.Fatalf("FromSelfieString: %v", err)
	}
	if got, want := restored.PublicSuffix("www.example.com"), original.PublicSuffix("www.example.com"); got != want {
		t.Errorf("restored.PublicSuffix = %q, want %q", got, want)
	}
}

// TestInvariantParseDeterminismBytes covers invariant 6 directly at the
// byte level, beyond builder_test.go's TestParseIsDeterministic.
func TestInvariantParseDeterminismBytes(t *testing.T) {
	a := New()
	a.Parse(testPSL, noASCIIConversion)
	b := New()
	b.Parse(testPSL, noASCIIConversion)

	if !bytes.Equal(a.buf.byteView()[scratchLen:], b.buf.byteView()[scratchLen:]) {
		t.Errorf("two independent parses of the same text produced different tree/char-data bytes")
	}
}
