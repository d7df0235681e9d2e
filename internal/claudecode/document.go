package claudecode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrInvalidJSON is returned for input that is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotObject is returned when valid JSON is not an object at the top level.
	ErrNotObject = errors.New("top-level JSON value is not an object")
)

var prettyOptions = &pretty.Options{Indent: "  "}

// Document is a JSON object kept as its encoded bytes. Edits go through
// sjson, so top-level keys keep their order and untouched values keep their
// bytes. Keys are plain top-level names; gjson path syntax is not escaped.
// A nil *Document reads as empty.
type Document struct {
	raw []byte
}

// NewDocument returns an empty object.
func NewDocument() *Document {
	return &Document{raw: []byte("{}")}
}

// ParseDocument wraps data, which must hold a single JSON object.
func ParseDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotObject
	}
	return &Document{raw: append([]byte(nil), data...)}, nil
}

// Keys returns the top-level keys in document order. A repeated key is
// listed once.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	var keys []string
	seen := map[string]bool{}
	d.each(func(key string, _ gjson.Result) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	})
	return keys
}

// Len returns the number of distinct top-level keys.
func (d *Document) Len() int {
	return len(d.Keys())
}

// Get returns the raw value stored at key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	if d == nil {
		return nil, false
	}
	r := gjson.GetBytes(d.raw, key)
	if !r.Exists() {
		return nil, false
	}
	return json.RawMessage(r.Raw), true
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores value at key. An existing key keeps its position; a new key is
// appended.
func (d *Document) Set(key string, value json.RawMessage) error {
	if !gjson.ValidBytes(value) {
		return fmt.Errorf("setting %q: %w", key, ErrInvalidJSON)
	}
	raw, err := sjson.SetRawBytes(d.raw, key, value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	d.raw = raw
	return nil
}

// Delete removes every occurrence of key.
func (d *Document) Delete(key string) error {
	for gjson.GetBytes(d.raw, key).Exists() {
		raw, err := sjson.DeleteBytes(d.raw, key)
		if err != nil {
			return fmt.Errorf("deleting %q: %w", key, err)
		}
		d.raw = raw
	}
	return nil
}

// Clone returns an independent copy.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}
	return &Document{raw: append([]byte(nil), d.raw...)}
}

// Bytes returns the document in compact form.
func (d *Document) Bytes() []byte {
	if d == nil {
		return []byte("{}")
	}
	return pretty.Ugly(d.raw)
}

// Pretty renders the document with two-space indentation and a trailing
// newline. '<', '>' and '&' are left unescaped.
func (d *Document) Pretty() []byte {
	if d == nil {
		return []byte("{}\n")
	}
	out := pretty.PrettyOptions(d.raw, prettyOptions)
	return append(bytes.TrimRight(out, "\n"), '\n')
}

func (d *Document) each(fn func(key string, value gjson.Result)) {
	gjson.ParseBytes(d.raw).ForEach(func(k, v gjson.Result) bool {
		fn(k.String(), v)
		return true
	})
}
