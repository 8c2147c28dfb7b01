// Package phone validates contact numbers and converts them to E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrInvalidFormat means the input could not be parsed as a phone number.
	ErrInvalidFormat = errors.New("invalid phone number format")
	// ErrInvalidNumber means the input parsed but is not a dialable number.
	ErrInvalidNumber = errors.New("invalid phone number")
)

// Normalize parses raw without a default region and returns its E.164 form.
// Numbers must therefore carry an international prefix.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidFormat
	}

	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", ErrInvalidFormat
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
