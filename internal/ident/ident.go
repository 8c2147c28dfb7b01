// Package ident generates the short identifiers that item owners share with finders.
package ident

import (
	"math/rand/v2"
	"strings"
)

// Length is the number of characters in a generated identifier.
const Length = 5

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a random identifier of Length alphanumeric characters.
// The result is not guaranteed to be unique and may contain upper-case
// letters; callers persist Normalize(Generate()).
func Generate() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Normalize returns the canonical (trimmed, lower-case) form of an identifier.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Valid reports whether id is a well-formed normalized identifier.
func Valid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
