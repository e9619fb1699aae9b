package theme

import (
	"arc-touch-go/internal/logging"
)

// Palette slots.
const (
	Background = iota
	Minute
	Hour
	Text
	NumColors
)

// DefaultCode is black background, yellow minute ring, orange hour ring.
const DefaultCode = "c0fcf4ed"

// Theme is the ordered palette {background, minute ring, hour ring, text}.
type Theme [NumColors]Color

// Decoder turns a theme code into a palette. Backends pick the decoder that
// matches their colour capability.
type Decoder interface {
	Decode(code string) Theme
}

// ColorDecoder reads one packed byte from each pair of hex digits.
type ColorDecoder struct{}

func (ColorDecoder) Decode(code string) Theme {
	if !Valid(code) {
		logging.Logger().Warn("theme code is not 8 hex digits, colours are undefined", "code", code)
	}
	var th Theme
	for i := range th {
		off := min(2*i, len(code))
		// Invalid digits contribute -1 and the sum wraps into the byte.
		th[i] = Color(uint8(ParseByte(code[off:])))
	}
	return th
}

// MonoDecoder ignores the code: displays without colour always get white on
// black.
type MonoDecoder struct{}

func (MonoDecoder) Decode(string) Theme {
	return Theme{Background: Black, Minute: White, Hour: White, Text: White}
}

// Default decodes DefaultCode.
func Default() Theme {
	return ColorDecoder{}.Decode(DefaultCode)
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return 10 + int(c-'a')
	case c >= 'A' && c <= 'F':
		return 10 + int(c-'A')
	}
	return -1
}

// ParseByte reads up to two leading hex digits of s. An empty string is 0;
// an invalid digit counts as -1, so the result may be negative.
func ParseByte(s string) int {
	switch len(s) {
	case 0:
		return 0
	case 1:
		return hexDigit(s[0])
	}
	return 16*hexDigit(s[0]) + hexDigit(s[1])
}

// Valid reports whether code is exactly eight hex digits.
func Valid(code string) bool {
	if len(code) != 2*NumColors {
		return false
	}
	for i := 0; i < len(code); i++ {
		if hexDigit(code[i]) < 0 {
			return false
		}
	}
	return true
}
