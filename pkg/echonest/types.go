package echonest

import (
	"encoding/json"
	"fmt"
)

// Document is a labeled, read-only view of one item from an Echo Nest
// response: an audio file, a biography, an image, and so on. The set of
// fields varies by kind and by item; requesting a field the item does
// not carry is an error.
type Document struct {
	// Kind labels what the document describes, e.g. "audio",
	// "biography", "image", "review", "video", "urls".
	Kind string

	fields map[string]interface{}
}

// newDocument builds a Document of the given kind from a raw response
// item.
func newDocument(kind string, raw json.RawMessage) (Document, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, fmt.Errorf("failed to parse %s document: %w", kind, err)
	}
	return Document{Kind: kind, fields: fields}, nil
}

// Get returns the named field of the document.
//
// Returns an error wrapping ErrNoSuchField when the field is absent.
func (d Document) Get(name string) (interface{}, error) {
	v, ok := d.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s document", ErrNoSuchField, name, d.Kind)
	}
	return v, nil
}

// GetString returns the named field as a string. Non-string fields are
// formatted with their default representation.
func (d Document) GetString(name string) (string, error) {
	v, err := d.Get(name)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Fields returns the names of every field present in the document.
func (d Document) Fields() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	return names
}
