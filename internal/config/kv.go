// Package config holds the user's watch face settings, their persistence
// and the host configuration read from the environment.
package config

import "strconv"

// Key identifies a persisted record.
type Key uint32

const (
	KeyDateOrder Key = 1852
	KeyLanguage  Key = 1853
	KeyBacklight Key = 1854
	KeyThemeCode Key = 1855
)

var keyNames = map[Key]string{
	KeyDateOrder: "dateorder",
	KeyLanguage:  "lang",
	KeyBacklight: "backlight",
	KeyThemeCode: "themecode",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return strconv.FormatUint(uint64(k), 10)
}

// KeyByName resolves a known key from its name or its decimal number.
func KeyByName(s string) (Key, bool) {
	for k, n := range keyNames {
		if n == s {
			return k, true
		}
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	if _, ok := keyNames[Key(v)]; !ok {
		return 0, false
	}
	return Key(v), true
}

// KV is the persistent key/value capability. WriteString reports the number
// of bytes stored; a short count means the write was truncated.
type KV interface {
	Exists(k Key) bool
	ReadInt(k Key) int32
	WriteInt(k Key, v int32) error
	ReadString(k Key) string
	WriteString(k Key, v string) (int, error)
}

// MemoryKV keeps records in memory only.
type MemoryKV struct {
	ints    map[Key]int32
	strings map[Key]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{ints: make(map[Key]int32), strings: make(map[Key]string)}
}

func (m *MemoryKV) Exists(k Key) bool {
	if _, ok := m.ints[k]; ok {
		return true
	}
	_, ok := m.strings[k]
	return ok
}

func (m *MemoryKV) ReadInt(k Key) int32 { return m.ints[k] }

func (m *MemoryKV) WriteInt(k Key, v int32) error {
	m.ints[k] = v
	return nil
}

func (m *MemoryKV) ReadString(k Key) string { return m.strings[k] }

func (m *MemoryKV) WriteString(k Key, v string) (int, error) {
	m.strings[k] = v
	return len(v), nil
}
