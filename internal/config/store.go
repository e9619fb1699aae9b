package config

import (
	"arc-touch-go/internal/i18n"
	"arc-touch-go/internal/logging"
	"arc-touch-go/internal/theme"
)

// Settings are the user-facing options of the watch face.
type Settings struct {
	DateOrder bool // true shows month/day, false day/month
	Language  i18n.Language
	Backlight bool
	ThemeCode string
}

// Defaults: month/day, English, backlight off, the stock palette.
func Defaults() Settings {
	return Settings{
		DateOrder: true,
		Language:  i18n.English,
		Backlight: false,
		ThemeCode: theme.DefaultCode,
	}
}

// Store is the in-memory copy of the persisted settings.
type Store struct {
	kv  KV
	cur Settings
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, cur: Defaults()}
}

// Settings returns the current values.
func (s *Store) Settings() Settings { return s.cur }

// Load reads every record, writing back the default for any that is absent.
func (s *Store) Load() Settings {
	d := Defaults()
	s.cur.DateOrder = s.loadInt(KeyDateOrder, boolInt(d.DateOrder)) != 0
	s.cur.Backlight = s.loadInt(KeyBacklight, boolInt(d.Backlight)) != 0

	lang := i18n.Language(s.loadInt(KeyLanguage, int32(d.Language)))
	if !lang.Valid() {
		logging.Logger().Warn("persisted language out of range, using default", "lang", int(lang))
		lang = d.Language
	}
	s.cur.Language = lang

	if s.kv.Exists(KeyThemeCode) {
		s.cur.ThemeCode = s.kv.ReadString(KeyThemeCode)
	} else {
		s.cur.ThemeCode = d.ThemeCode
		s.writeString(KeyThemeCode, d.ThemeCode)
	}

	s.log("settings loaded")
	return s.cur
}

func (s *Store) loadInt(k Key, def int32) int32 {
	if s.kv.Exists(k) {
		return s.kv.ReadInt(k)
	}
	logging.Logger().Debug("record absent, writing default", "key", k, "value", def)
	s.writeInt(k, def)
	return def
}

// Apply stores the fields of u that differ from the current values and
// reports whether anything changed. Unchanged fields are not written.
func (s *Store) Apply(u Update) bool {
	changed := false
	if v := u.DateOrder != 0; v != s.cur.DateOrder {
		s.cur.DateOrder = v
		s.writeInt(KeyDateOrder, boolInt(v))
		changed = true
	}
	if l := i18n.Language(u.Language); l != s.cur.Language {
		s.cur.Language = l
		s.writeInt(KeyLanguage, u.Language)
		changed = true
	}
	if v := u.Backlight != 0; v != s.cur.Backlight {
		s.cur.Backlight = v
		s.writeInt(KeyBacklight, boolInt(v))
		changed = true
	}
	if u.ThemeCode != s.cur.ThemeCode {
		s.cur.ThemeCode = u.ThemeCode
		s.writeString(KeyThemeCode, u.ThemeCode)
		changed = true
	} else {
		logging.Logger().Debug("theme code unchanged", "code", u.ThemeCode)
	}
	s.log("update received")
	return changed
}

// Write failures are logged and otherwise ignored; the in-memory value
// stays authoritative until the next start.
func (s *Store) writeInt(k Key, v int32) {
	if err := s.kv.WriteInt(k, v); err != nil {
		logging.Logger().Warn("persist int failed", "key", k, "value", v, "err", err)
	}
}

func (s *Store) writeString(k Key, v string) {
	n, err := s.kv.WriteString(k, v)
	if err != nil || n < len(v) {
		logging.Logger().Warn("persist string failed", "key", k, "value", v, "written", n, "err", err)
	}
}

func (s *Store) log(msg string) {
	logging.Logger().Debug(msg,
		"dateorder", s.cur.DateOrder,
		"lang", s.cur.Language,
		"backlight", s.cur.Backlight,
		"themecode", s.cur.ThemeCode)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
