package pkg

import (
	"math/rand/v2"
	"strings"
)

const randAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString returns a random alphanumeric string of length n. It is not
// cryptographically secure and is meant for test fixtures.
func RandString(n int) string {
	var b strings.Builder
	b.Grow(n)

	for range n {
		b.WriteByte(randAlphabet[rand.IntN(len(randAlphabet))])
	}

	return b.String()
}
