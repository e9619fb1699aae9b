package config

import (
	"errors"
	"fmt"
	"strconv"

	"arc-touch-go/internal/i18n"
)

var (
	ErrMissingKey   = errors.New("missing key")
	ErrInvalidValue = errors.New("invalid value")
)

// Value is one entry of an inbound message: an integer or a string.
type Value struct {
	Int      int32
	Str      string
	IsString bool
}

func Int(v int32) Value     { return Value{Int: v} }
func String(s string) Value { return Value{Str: s, IsString: true} }

func (v Value) asInt() (int32, error) {
	if !v.IsString {
		return v.Int, nil
	}
	n, err := strconv.ParseInt(v.Str, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v.Str)
	}
	return int32(n), nil
}

// Message is an inbound key/value update as delivered by a transport.
type Message map[Key]Value

// Update is a complete, validated set of new settings.
type Update struct {
	DateOrder int32
	Language  int32
	Backlight int32
	ThemeCode string
}

// ParseUpdate validates m. Every recognised key must be present; otherwise
// the whole message is rejected.
func ParseUpdate(m Message) (Update, error) {
	var u Update
	for _, k := range []Key{KeyDateOrder, KeyLanguage, KeyBacklight, KeyThemeCode} {
		if _, ok := m[k]; !ok {
			return Update{}, fmt.Errorf("%w: %v", ErrMissingKey, k)
		}
	}

	var err error
	if u.DateOrder, err = m[KeyDateOrder].asInt(); err != nil {
		return Update{}, fmt.Errorf("%v: %w", KeyDateOrder, err)
	}
	if u.Language, err = m[KeyLanguage].asInt(); err != nil {
		return Update{}, fmt.Errorf("%v: %w", KeyLanguage, err)
	}
	if !i18n.Language(u.Language).Valid() {
		return Update{}, fmt.Errorf("%v: %w: %d out of range", KeyLanguage, ErrInvalidValue, u.Language)
	}
	if u.Backlight, err = m[KeyBacklight].asInt(); err != nil {
		return Update{}, fmt.Errorf("%v: %w", KeyBacklight, err)
	}

	tc := m[KeyThemeCode]
	if !tc.IsString {
		return Update{}, fmt.Errorf("%v: %w: want a string", KeyThemeCode, ErrInvalidValue)
	}
	u.ThemeCode = tc.Str
	return u, nil
}

// Message returns the update as it would arrive from a transport.
func (u Update) Message() Message {
	return Message{
		KeyDateOrder: Int(u.DateOrder),
		KeyLanguage:  Int(u.Language),
		KeyBacklight: Int(u.Backlight),
		KeyThemeCode: String(u.ThemeCode),
	}
}

// UpdateFrom builds the update that would reproduce s.
func UpdateFrom(s Settings) Update {
	return Update{
		DateOrder: boolInt(s.DateOrder),
		Language:  int32(s.Language),
		Backlight: boolInt(s.Backlight),
		ThemeCode: s.ThemeCode,
	}
}
