package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// fileDoc is the on-disk layout: one JSON object per record type, keyed by
// the decimal record number.
type fileDoc struct {
	Ints    map[string]int32  `json:"ints"`
	Strings map[string]string `json:"strings"`
}

// FileKV persists records to a JSON file, rewriting it on every write.
type FileKV struct {
	path string
	doc  fileDoc
}

// OpenFileKV loads path. A missing file is an empty store.
func OpenFileKV(path string) (*FileKV, error) {
	f := &FileKV{path: path, doc: fileDoc{Ints: map[string]int32{}, Strings: map[string]string{}}}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &f.doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.doc.Ints == nil {
		f.doc.Ints = map[string]int32{}
	}
	if f.doc.Strings == nil {
		f.doc.Strings = map[string]string{}
	}
	return f, nil
}

func (f *FileKV) Path() string { return f.path }

func id(k Key) string { return strconv.FormatUint(uint64(k), 10) }

func (f *FileKV) Exists(k Key) bool {
	if _, ok := f.doc.Ints[id(k)]; ok {
		return true
	}
	_, ok := f.doc.Strings[id(k)]
	return ok
}

func (f *FileKV) ReadInt(k Key) int32 { return f.doc.Ints[id(k)] }

func (f *FileKV) WriteInt(k Key, v int32) error {
	f.doc.Ints[id(k)] = v
	return f.save()
}

func (f *FileKV) ReadString(k Key) string { return f.doc.Strings[id(k)] }

func (f *FileKV) WriteString(k Key, v string) (int, error) {
	f.doc.Strings[id(k)] = v
	if err := f.save(); err != nil {
		return 0, err
	}
	return len(v), nil
}

func (f *FileKV) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := writeSynced(tmp, b); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// writeSynced writes b to path and flushes it to disk, so a rename that
// follows never exposes a file whose data is still in the page cache.
func writeSynced(path string, b []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(b); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
