package game

import (
	"strconv"
	"strings"
)

// Rand is the random source the card pool draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// ShortCode returns a decimal code of exactly digits digits with no leading zero.
func ShortCode(rng Rand, digits int) string {
	if digits < 1 {
		digits = 1
	}
	var b strings.Builder
	b.Grow(digits)
	b.WriteString(strconv.Itoa(1 + rng.IntN(9)))
	for i := 1; i < digits; i++ {
		b.WriteString(strconv.Itoa(rng.IntN(10)))
	}
	return b.String()
}

// IsShortCode reports whether code looks like a value ShortCode could produce.
func IsShortCode(code string) bool {
	if code == "" || code[0] == '0' {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates).
func Shuffle[T any](rng Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
