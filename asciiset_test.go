package pslcore

import "testing"

func TestIsPlainRuleBytes(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"com", true},
		{"co.uk", true},
		{"*.jp", true},
		{"!city.kawasaki.jp", false}, // '!' is stripped by the caller before this check
		{"xn--p1ai", true},
		{"example.世界", false},
	}
	for _, c := range cases {
		if got := isPlainRuleBytes(c.s); got != c.want {
			t.Errorf("isPlainRuleBytes(%q) = %t, want %t", c.s, got, c.want)
		}
	}
}

func TestLowerASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"COM", "com"},
		{"Co.UK", "co.uk"},
		{"例え.COM", "例え.com"},
		{"already-lower", "already-lower"},
	}
	for _, c := range cases {
		if got := lowerASCII(c.in); got != c.want {
			t.Errorf("lowerASCII(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
