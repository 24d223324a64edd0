package cache

import (
	"bytes"
	"encoding/json"
)

// Kind tags what a cached Value holds. Raw page bodies and decoded API
// payloads share one store, so every entry says which one it is.
type Kind string

const (
	KindText Kind = "text"
	KindJSON Kind = "json"
)

// Value is a single cache entry payload.
type Value struct {
	kind    Kind
	text    string
	payload json.RawMessage
}

// TextValue wraps a raw response body.
func TextValue(text string) Value {
	return Value{
		kind: KindText,
		text: text,
	}
}

// JSONValue wraps an already-validated structured payload. The bytes are
// copied so later mutation by the caller cannot change the cached entry.
func JSONValue(payload json.RawMessage) Value {
	copied := make(json.RawMessage, len(payload))
	copy(copied, payload)
	return Value{
		kind:    KindJSON,
		payload: copied,
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Text() string {
	return v.text
}

func (v Value) JSON() json.RawMessage {
	copied := make(json.RawMessage, len(v.payload))
	copy(copied, v.payload)
	return copied
}

// Bytes returns the stored content regardless of kind, for sizing and digests.
func (v Value) Bytes() []byte {
	if v.kind == KindJSON {
		return v.JSON()
	}
	return []byte(v.text)
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindJSON {
		return bytes.Equal(v.payload, other.payload)
	}
	return v.text == other.text
}
