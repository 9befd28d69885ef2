package persist

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// ShareParam is the query parameter carrying the payload.
const ShareParam = "data"

// ShareURL embeds the JSON payload into base as ?data=<percent-encoded JSON>.
func ShareURL(base string, p Payload) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse share base: %w", err)
	}
	data, err := json.Marshal(Payload{Icons: p.Icons, Texts: p.Texts, Props: p.Props, Grid: p.Grid})
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	q := u.Query()
	q.Set(ShareParam, string(data))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// SharePayload extracts the raw payload from a share link. A bare query
// value (without scheme or '?') is accepted too. ok is false when no
// payload is present.
func SharePayload(raw string) ([]byte, bool, error) {
	if raw == "" {
		return nil, false, nil
	}
	if raw[0] == '{' {
		return []byte(raw), true, nil
	}
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme != "" || u.RawQuery != "") {
		data := u.Query().Get(ShareParam)
		if data == "" {
			return nil, false, nil
		}
		return []byte(data), true, nil
	}
	data, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode share payload: %w", err)
	}
	return []byte(data), true, nil
}

// MergePayload validates a JSON payload and writes only the fields it
// contains. Absent or null fields leave stored state untouched. Nothing is
// written when any present field is malformed or falls outside b.
func MergePayload(store Store, data []byte, b Bounds) ([]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	keys := append(append([]string(nil), DocumentKeys...), KeyRGBValues)
	var present []string
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			continue
		}
		if _, err := decodeWithin(b, key, raw); err != nil {
			return nil, err
		}
		present = append(present, key)
	}
	for _, key := range present {
		if err := store.Set(key, fields[key]); err != nil {
			return nil, fmt.Errorf("store %s: %w", key, err)
		}
	}
	return present, nil
}

// ApplyShare merges the payload of a share link into store. It returns the
// keys it overwrote; a link without payload is not an error.
func ApplyShare(store Store, raw string, b Bounds) ([]string, error) {
	data, ok, err := SharePayload(raw)
	if err != nil || !ok {
		return nil, err
	}
	return MergePayload(store, data, b)
}
