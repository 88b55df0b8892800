// Package sanitizer turns untrusted request values into bounded,
// control-character-free strings that are safe to write to a log line.
//
// Nothing here returns an error: bad input degrades to the caller's
// default value.
package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Unknown is the fallback used for device and IP values that cannot be trusted.
const Unknown = "unknown"

var (
	// ipv4Pattern checks shape only. Octets are not range checked,
	// so 999.999.999.999 passes.
	ipv4Pattern = regexp.MustCompile(`^([0-9]{1,3}\.){3}[0-9]{1,3}$`)

	// ipv6Pattern accepts 2 to 8 colon separated groups of up to four hex
	// digits. It does not understand "::" compression rules.
	ipv6Pattern = regexp.MustCompile(`^([0-9a-fA-F]{0,4}:){2,7}[0-9a-fA-F]{0,4}$`)
)

// String sanitizes a loosely typed value.
//
// value is returned as def when it is nil, not a string, or blank.
// Otherwise it is trimmed, stripped of C0 and C1 control characters and
// cut to at most maxLength characters (runes, not bytes). If nothing is
// left, def is returned.
func String(value any, maxLength int, def string) string {
	s, ok := value.(string)
	if !ok || maxLength <= 0 {
		return def
	}

	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return def
	}

	s = StripControl(s)
	s = Truncate(s, maxLength)
	if s == "" {
		return def
	}

	return s
}

// IP extracts the left-most address from a forwarding header such as
// X-Forwarded-For and returns it if it looks like an IPv4 or IPv6
// literal. Anything else, including an empty header, yields Unknown.
func IP(header string) string {
	if header == "" {
		return Unknown
	}

	candidate, _, _ := strings.Cut(header, ",")
	candidate = strings.TrimFunc(candidate, isSpace)

	if ipv4Pattern.MatchString(candidate) || ipv6Pattern.MatchString(candidate) {
		return candidate
	}

	return Unknown
}

// StripControl drops every C0 (U+0000-U+001F, U+007F) and C1
// (U+0080-U+009F) code point from s.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// IsControl reports whether r is a C0 or C1 control character.
func IsControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

// isSpace matches unicode white space plus the ASCII information
// separators (0x1C-0x1F), which client runtimes also treat as white space.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}
