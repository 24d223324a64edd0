package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/rohmanhakim/nps-sites/pkg/fileutil"
)

// JSONFileBackend persists the whole mapping as one JSON object:
//
//	{"<key>": "<raw text>" | <structured payload>}
//
// Text values are written as JSON strings and every other JSON value is a
// structured payload, so the file carries no kind tags. A structured payload
// that is itself a bare JSON string therefore reloads as text.
type JSONFileBackend struct {
	path string
}

func NewJSONFileBackend(path string) *JSONFileBackend {
	return &JSONFileBackend{
		path: path,
	}
}

func (b *JSONFileBackend) Location() string {
	return b.path
}

func (b *JSONFileBackend) Load() (map[string]Value, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]Value), nil
		}
		return nil, newCacheError(ErrCauseReadFailure, b.path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newCacheError(ErrCauseParseFailure, b.path, err)
	}

	entries := make(map[string]Value, len(raw))
	for key, payload := range raw {
		value, err := decodeEntry(payload)
		if err != nil {
			return nil, newCacheError(ErrCauseParseFailure, b.path, err)
		}
		entries[key] = value
	}
	return entries, nil
}

func (b *JSONFileBackend) Save(entries map[string]Value) error {
	raw := make(map[string]json.RawMessage, len(entries))
	for key, value := range entries {
		payload, err := encodeEntry(value)
		if err != nil {
			return newCacheError(ErrCauseEncodeFailure, b.path, err)
		}
		raw[key] = payload
	}

	// cached HTML is full of '<' and '&'; keep it readable on disk
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(raw); err != nil {
		return newCacheError(ErrCauseEncodeFailure, b.path, err)
	}

	if err := fileutil.WriteFileAtomic(b.path, buf.Bytes(), 0644); err != nil {
		return newCacheError(ErrCauseWriteFailure, b.path, err)
	}
	return nil
}

func decodeEntry(payload json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Value{}, err
		}
		return TextValue(text), nil
	}
	return JSONValue(trimmed), nil
}

func encodeEntry(value Value) (json.RawMessage, error) {
	if value.Kind() == KindJSON {
		payload := value.JSON()
		if !json.Valid(payload) {
			return nil, errors.New("structured value is not valid JSON")
		}
		return payload, nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value.Text()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
