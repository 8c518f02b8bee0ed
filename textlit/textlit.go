// Package textlit assembles text literals from raw bytes.
package textlit

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidText reports bytes that are not well-formed UTF-8.
var ErrInvalidText = errors.New("invalid UTF-8 text")

// Decode validates b as UTF-8 and returns it as a string.
func Decode(b []byte) (string, error) {
	out, n, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", fmt.Errorf("%w: at byte %d: %w", ErrInvalidText, n, err)
	}
	return string(out), nil
}

// DecodeUnchecked converts b without validation. Invalid sequences are kept
// as they are; the caller vouches for b.
func DecodeUnchecked(b []byte) string {
	return string(b)
}

// MustDecode is Decode for literal fixtures. It panics on invalid input.
func MustDecode(b []byte) string {
	s, err := Decode(b)
	if err != nil {
		panic(err)
	}
	return s
}

// Normalize returns s in Unicode normalization form C.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
