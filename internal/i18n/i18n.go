// Package i18n holds the weekday abbreviations shown in the date text.
package i18n

import (
	"strings"
	"time"
)

// Language is the persisted language index.
type Language int

const (
	Dutch Language = iota
	English
	French
	German
	Spanish
	Portuguese
	Swedish
	NumLanguages
)

var names = [NumLanguages]string{
	"dutch", "english", "french", "german", "spanish", "portuguese", "swedish",
}

// weekdays is indexed by language, then by time.Weekday (Sunday first).
var weekdays = [NumLanguages][7]string{
	{"zon", "maa", "din", "woe", "don", "vri", "zat"},
	{"sun", "mon", "tue", "wed", "thu", "fri", "sat"},
	{"dim", "lun", "mar", "mer", "jeu", "ven", "sam"},
	{"son", "mon", "die", "mit", "don", "fre", "sam"},
	{"dom", "lun", "mar", "mie", "jue", "vie", "sab"},
	{"dom", "seg", "ter", "qua", "qui", "sex", "sab"},
	{"sön", "mån", "Tis", "ons", "tor", "fre", "lör"},
}

func (l Language) Valid() bool {
	return l >= 0 && l < NumLanguages
}

func (l Language) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return names[l]
}

// Parse resolves a language by its English name, case-insensitively.
func Parse(name string) (Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Language(i), true
		}
	}
	return English, false
}

// Weekday returns the three-letter abbreviation of d. Unknown languages fall
// back to English.
func Weekday(l Language, d time.Weekday) string {
	if !l.Valid() {
		l = English
	}
	return weekdays[l][d%7]
}
