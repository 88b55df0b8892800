package sanitizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		maxLength int
		def       string
		want      string
	}{
		{name: "nil", value: nil, maxLength: 10, def: "d", want: "d"},
		{name: "empty", value: "", maxLength: 10, def: "d", want: "d"},
		{name: "blank", value: "   ", maxLength: 10, def: "d", want: "d"},
		{name: "number", value: float64(42), maxLength: 10, def: "d", want: "d"},
		{name: "bool", value: true, maxLength: 10, def: "d", want: "d"},
		{name: "object", value: map[string]any{"a": "b"}, maxLength: 10, def: "d", want: "d"},
		{name: "plain", value: "phone", maxLength: 10, def: "d", want: "phone"},
		{name: "trimmed", value: "  phone \n", maxLength: 10, def: "d", want: "phone"},
		{name: "c0 stripped", value: "pho\x01ne\x1b", maxLength: 10, def: "d", want: "phone"},
		{name: "del stripped", value: "ph\x7fone", maxLength: 10, def: "d", want: "phone"},
		{name: "c1 stripped", value: "ph\u0085o\u009fne", maxLength: 10, def: "d", want: "phone"},
		{name: "inner newline stripped", value: "a\nb", maxLength: 10, def: "d", want: "ab"},
		{name: "only control", value: "\x01\x02\x7f", maxLength: 10, def: "d", want: "d"},
		{name: "separators trimmed", value: "\x1ca b\x1f", maxLength: 10, def: "d", want: "a b"},
		{name: "truncated", value: "abcdefghij", maxLength: 4, def: "d", want: "abcd"},
		{name: "truncated by runes", value: "ééééé", maxLength: 3, def: "d", want: "ééé"},
		{name: "non-positive max", value: "abc", maxLength: 0, def: "d", want: "d"},
		{name: "unicode kept", value: "küche 🏠", maxLength: 10, def: "d", want: "küche 🏠"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.value, tt.maxLength, tt.def))
		})
	}
}

func TestString_LengthCap(t *testing.T) {
	got := String(strings.Repeat("a", 1000), 100, "d")
	assert.Len(t, got, 100)

	got = String(strings.Repeat("ü", 1000), 100, "d")
	assert.Equal(t, 100, utf8.RuneCountInString(got))
}

func TestString_NeverEmitsControlCharacters(t *testing.T) {
	var b strings.Builder
	for r := rune(0); r <= 0xFF; r++ {
		b.WriteRune(r)
	}
	b.WriteString("\xff\xfe invalid utf8")
	input := b.String()

	for _, n := range []int{1, 5, 50, 100, 500} {
		got := String(input, n, "d")
		assert.LessOrEqual(t, utf8.RuneCountInString(got), n)
		for _, r := range got {
			assert.Falsef(t, IsControl(r), "control rune %U in output", r)
		}
	}
}

func TestString_Deterministic(t *testing.T) {
	in := " \tdevice\x00-01\u0090 "
	assert.Equal(t, String(in, 100, Unknown), String(in, 100, Unknown))
}

func TestIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "absent", header: "", want: Unknown},
		{name: "ipv4", header: "1.2.3.4", want: "1.2.3.4"},
		{name: "first of chain", header: "10.0.0.1, 5.6.7.8", want: "10.0.0.1"},
		{name: "padded", header: "  192.168.1.10  ,10.0.0.1", want: "192.168.1.10"},
		{name: "octets not range checked", header: "999.999.999.999", want: "999.999.999.999"},
		{name: "too many octets", header: "1.2.3.4.5", want: Unknown},
		{name: "non-ascii digits", header: "١.٢.٣.٤", want: Unknown},
		{name: "long octet", header: "1.2.3.1234", want: Unknown},
		{name: "ipv4 with port", header: "1.2.3.4:80", want: Unknown},
		{name: "ipv6 compressed", header: "2001:db8::1", want: "2001:db8::1"},
		{name: "ipv6 full", header: "2001:0db8:85a3:0000:0000:8a2e:0370:7334", want: "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{name: "ipv6 loopback", header: "::1", want: "::1"},
		{name: "ipv6 bare compression", header: "::", want: "::"},
		{name: "ipv6 single colon", header: "ab:cd", want: Unknown},
		{name: "ipv6 too many groups", header: "1:2:3:4:5:6:7:8:9", want: Unknown},
		{name: "ipv6 long group", header: "12345::1", want: Unknown},
		{name: "ipv6 mapped ipv4 rejected", header: "::ffff:1.2.3.4", want: Unknown},
		{name: "not an ip", header: "not-an-ip", want: Unknown},
		{name: "empty first entry", header: ", 1.2.3.4", want: Unknown},
		{name: "injection", header: "1.2.3.4\nheartbeat: forged", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IP(tt.header))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "日本", Truncate("日本語", 2))
}
