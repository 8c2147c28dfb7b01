package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for range 200 {
		id := Generate()
		assert.Len(t, id, Length)
		for _, c := range id {
			assert.Contains(t, alphabet, string(c))
		}
		assert.True(t, Valid(Normalize(id)), "normalized %q should be valid", id)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc12", Normalize("ABC12"))
	assert.Equal(t, "abc12", Normalize("  aBc12 \n"))
	assert.Equal(t, Normalize("ABC12"), Normalize("abc12"))
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc12", true},
		{"00000", true},
		{"ABC12", false},
		{"abc1", false},
		{"abc123", false},
		{"ab-12", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), "Valid(%q)", tt.id)
	}
}
