package pslcore

import "testing"

func TestIsLabelSeparator(t *testing.T) {
	for _, r := range []rune(labelSeparators) {
		if !isLabelSeparator(r) {
			t.Errorf("isLabelSeparator(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'a', '-', '@', '新'} {
		if isLabelSeparator(r) {
			t.Errorf("isLabelSeparator(%q) = true, want false", r)
		}
	}
}

func TestNormalizeLabelSeparators(t *testing.T) {
	cases := []struct{ in, want string }{
		{"example.com", "example.com"},
		{"example。com", "example.com"},
		{"example．com．uk", "example.com.uk"},
		{"example｡com", "example.com"},
	}
	for _, c := range cases {
		if got := normalizeLabelSeparators(c.in); got != c.want {
			t.Errorf("normalizeLabelSeparators(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
