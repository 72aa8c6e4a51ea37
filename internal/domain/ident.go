package domain

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// IDLength is the length of identifiers produced by NewID.
const IDLength = 10

// NewID returns a short random base-36 identifier. It draws 122 random bits
// from a v4 UUID and keeps the first IDLength base-36 digits.
func NewID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	for len(s) < IDLength {
		s = "0" + s
	}
	return s[:IDLength]
}

// Slugify derives a URL-safe slug from a name: lower-case, drop everything
// except ASCII letters, digits, underscores and whitespace, then join the
// remaining words with single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
