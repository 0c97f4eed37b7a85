package pslcore

import (
	"strings"
	"unicode/utf8"
)

// ipv4Len and ipv6Len are the byte lengths of literal IPv4 and IPv6
// addresses (isIPv6 counts two bytes per 16-bit group), used only by looksLikeIPLiteral's parsers below: a
// hostname that parses as either has no public suffix by definition
// (SPEC_FULL.md §4.3 supplement).
const (
	ipv4Len = 4
	ipv6Len = 16
)

// ipLiteralMaxDigits bounds dtoi/xtoi's accumulator so a pathological
// run of digits can't overflow int before the caller rejects it.
const ipLiteralMaxDigits = 0xFFFFFF

// dtoi parses a leading decimal run of s, returning the value, the
// number of bytes consumed, and whether at least one digit was found;
// ok is also false once the value reaches ipLiteralMaxDigits.
func dtoi(s string) (n int, i int, ok bool) {
	for i = 0; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n >= ipLiteralMaxDigits {
			return ipLiteralMaxDigits, i, false
		}
	}
	if i == 0 {
		return 0, 0, false
	}
	return n, i, true
}

// xtoi parses a leading hexadecimal run of s, returning the value, the
// number of bytes consumed, and whether at least one hex digit was
// found; ok is also false once the value reaches ipLiteralMaxDigits.
func xtoi(s string) (n int, i int, ok bool) {
	for i = 0; i < len(s); i++ {
		switch {
		case '0' <= s[i] && s[i] <= '9':
			n = n*16 + int(s[i]-'0')
		case 'a' <= s[i] && s[i] <= 'f':
			n = n*16 + int(s[i]-'a') + 10
		case 'A' <= s[i] && s[i] <= 'F':
			n = n*16 + int(s[i]-'A') + 10
		default:
			return n, i, i > 0
		}
		if n >= ipLiteralMaxDigits {
			return 0, i, false
		}
	}
	if i == 0 {
		return 0, 0, false
	}
	return n, i, true
}

// isIPv4 reports whether s is a literal dotted-quad IPv4 address.
// Non-ASCII label separators are accepted between octets so a hostname
// already normalized through labelSeparators still parses correctly.
func isIPv4(s string) bool {
	for i := 0; i < ipv4Len; i++ {
		if len(s) == 0 {
			return false
		}
		if i > 0 {
			r, size := utf8.DecodeRuneInString(s)
			if strings.IndexRune(labelSeparators, r) == -1 {
				return false
			}
			s = s[size:]
		}
		n, c, ok := dtoi(s)
		if !ok || n > 0xFF {
			return false
		}
		if c > 1 && s[0] == '0' {
			return false // reject non-zero octets with leading zeroes
		}
		s = s[c:]
	}
	return len(s) == 0
}

// isIPv6 reports whether s is a literal IPv6 address per RFC 4291 /
// RFC 5952, including the trailing-embedded-IPv4 form.
func isIPv6(s string) bool {
	ellipsis := -1

	if len(s) >= 2 && s[0] == ':' && s[1] == ':' {
		ellipsis = 0
		s = s[2:]
		if len(s) == 0 {
			return true
		}
	}

	i := 0
	for i < ipv6Len {
		n, c, ok := xtoi(s)
		if !ok || n > 0xFFFF {
			return false
		}

		if c < len(s) && strings.IndexRune(labelSeparators, []rune(s[c:])[0]) != -1 {
			if ellipsis < 0 && i != ipv6Len-ipv4Len {
				return false
			}
			if i+ipv4Len > ipv6Len {
				return false
			}
			if !isIPv4(s) {
				return false
			}
			s = ""
			i += ipv4Len
			break
		}

		i += 2
		s = s[c:]
		if len(s) == 0 {
			break
		}

		if s[0] != ':' || len(s) == 1 {
			return false
		}
		s = s[1:]

		if s[0] == ':' {
			if ellipsis >= 0 {
				return false
			}
			ellipsis = i
			s = s[1:]
			if len(s) == 0 {
				break
			}
		}
	}

	if len(s) != 0 {
		return false
	}

	if i < ipv6Len {
		if ellipsis < 0 {
			return false
		}
	} else if ellipsis >= 0 {
		return false // ellipsis must represent at least one zero group
	}
	return true
}

// looksLikeIPLiteral reports whether h is a literal IPv4 or IPv6
// address. SPEC_FULL.md §4.3 supplement: IP literals have no public
// suffix by definition.
func looksLikeIPLiteral(h string) bool {
	if h == "" {
		return false
	}
	if h[0] == '[' && h[len(h)-1] == ']' {
		return isIPv6(h[1 : len(h)-1])
	}
	if isIPv4(h) {
		return true
	}
	return isIPv6(h)
}
