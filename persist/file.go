package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportName is the fixed file name of exported saves.
const ExportName = "AlienMap.json"

// ExportFile writes p as indented JSON to dir/AlienMap.json and returns the path.
func ExportFile(dir string, p Payload) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportName)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	return path, nil
}

// ImportError reports an unusable save file. The store is left untouched.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportFile validates the save at path against b and overwrites every
// document field in store with it. Fields missing from the file are stored
// empty.
func ImportFile(store Store, path string, b Bounds) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ImportError{Path: path, Err: err}
	}
	return importBytes(store, path, data, b)
}

func importBytes(store Store, path string, data []byte, b Bounds) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &ImportError{Path: path, Err: fmt.Errorf("not a JSON object: %w", err)}
	}
	known := false
	for _, key := range DocumentKeys {
		if _, ok := fields[key]; ok {
			known = true
			break
		}
	}
	if !known {
		return &ImportError{Path: path, Err: fmt.Errorf("no icons, texts, props or grid field")}
	}

	values := make(map[string][]byte, len(DocumentKeys)+1)
	for _, key := range DocumentKeys {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			values[key] = []byte("[]")
			continue
		}
		if _, err := decodeWithin(b, key, raw); err != nil {
			return &ImportError{Path: path, Err: err}
		}
		values[key] = raw
	}
	if raw, ok := fields[KeyRGBValues]; ok && !isNull(raw) {
		if _, err := decodeField(KeyRGBValues, raw); err != nil {
			return &ImportError{Path: path, Err: err}
		}
		values[KeyRGBValues] = raw
	}

	for _, key := range append(append([]string(nil), DocumentKeys...), KeyRGBValues) {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := store.Set(key, v); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
	}
	return nil
}
