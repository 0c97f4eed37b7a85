package pslcore

import (
	"errors"
	"testing"
)

func TestEnableAcceleratorSuccess(t *testing.T) {
	l := newScenarioList(t)
	ok := l.EnableAccelerator(func() ([]byte, error) { return []byte{0x01}, nil })
	if !hostLittleEndian() {
		if ok {
			t.Fatalf("EnableAccelerator succeeded on a big-endian host, want false")
		}
		return
	}
	if !ok {
		t.Fatalf("EnableAccelerator = false, want true")
	}
	if !l.AcceleratorEnabled() {
		t.Errorf("AcceleratorEnabled() = false after successful EnableAccelerator")
	}
	// The capability swap must not change query results (spec.md §9).
	if got, want := l.PublicSuffix("www.example.com"), "com"; got != want {
		t.Errorf("PublicSuffix with accelerator enabled = %q, want %q", got, want)
	}
}

func TestEnableAcceleratorFailureLeavesReferenceActive(t *testing.T) {
	l := newScenarioList(t)
	ok := l.EnableAccelerator(func() ([]byte, error) { return nil, errors.New("fetch failed") })
	if ok {
		t.Fatalf("EnableAccelerator = true on a failing fetch, want false")
	}
	if l.AcceleratorEnabled() {
		t.Errorf("AcceleratorEnabled() = true after a failed EnableAccelerator")
	}
	if got, want := l.PublicSuffix("www.example.com"), "com"; got != want {
		t.Errorf("PublicSuffix after failed EnableAccelerator = %q, want %q", got, want)
	}
}

func TestEnableAcceleratorRejectsNilFetch(t *testing.T) {
	l := newScenarioList(t)
	if l.EnableAccelerator(nil) {
		t.Errorf("EnableAccelerator(nil) = true, want false")
	}
}

func TestDisableAcceleratorRestoresReference(t *testing.T) {
	l := newScenarioList(t)
	l.EnableAccelerator(func() ([]byte, error) { return []byte{0x01}, nil })
	l.DisableAccelerator()
	if l.AcceleratorEnabled() {
		t.Errorf("AcceleratorEnabled() = true after DisableAccelerator")
	}
}
