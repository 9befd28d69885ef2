package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/milk9111/blueprint/document"
)

// Flusher writes individual document fields to the store after edits.
type Flusher struct {
	Store Store
	Doc   *document.Document
}

func (f *Flusher) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := f.Store.Set(key, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (f *Flusher) FlushGrid() error {
	return f.put(KeyGrid, GridEntriesOf(f.Doc.Floor))
}

func (f *Flusher) FlushProps() error {
	return f.put(KeyProps, f.Doc.Decor.List())
}

func (f *Flusher) FlushIcons() error {
	icons := f.Doc.Icons
	if icons == nil {
		icons = []document.Icon{}
	}
	return f.put(KeyIcons, icons)
}

func (f *Flusher) FlushTexts() error {
	texts := f.Doc.Texts
	if texts == nil {
		texts = []document.Text{}
	}
	return f.put(KeyTexts, texts)
}

func (f *Flusher) FlushTint() error {
	return f.put(KeyRGBValues, f.Doc.Tint)
}

// FlushAll writes every field; used after undo, redo and reload.
func (f *Flusher) FlushAll() error {
	for _, fn := range []func() error{f.FlushGrid, f.FlushProps, f.FlushIcons, f.FlushTexts, f.FlushTint} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// SaveRecord is stored under KeySave after a file export.
type SaveRecord struct {
	File string    `json:"file"`
	At   time.Time `json:"at"`
}

func (f *Flusher) RecordSave(path string, at time.Time) error {
	return f.put(KeySave, SaveRecord{File: path, At: at})
}

// LastSave returns the most recent export record, if any.
func LastSave(store Store) (SaveRecord, bool) {
	raw, ok, err := store.Get(KeySave)
	if err != nil || !ok || isNull(raw) {
		return SaveRecord{}, false
	}
	var rec SaveRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return SaveRecord{}, false
	}
	return rec, true
}
