package cpu

import (
	"fmt"
	"strings"
)

// Bits renders the low width bits of v most significant bit first.
// Higher bits are dropped, so a negative value cast to uint32 comes out as its
// width-bit two's complement form.
func Bits(v uint32, width int) string {
	var sb strings.Builder
	sb.Grow(width)
	for i := width - 1; i >= 0; i-- {
		if i < 32 && v&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String renders the word as 32 binary digits.
func (w Word) String() string {
	return Bits(uint32(w), 32)
}

// ParseBits converts a string of 0 and 1 digits, most significant first, into
// a value. At most 32 digits are accepted.
func ParseBits(s string) (uint32, error) {
	if s == "" || len(s) > 32 {
		return 0, fmt.Errorf("bit string must have 1-32 digits, got %d", len(s))
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return 0, fmt.Errorf("invalid bit %q at position %d", s[i], i)
		}
	}
	return v, nil
}

// WordsToBits renders each word as one 32-digit bit string.
func WordsToBits(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}
