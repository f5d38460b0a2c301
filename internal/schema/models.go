package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ElementType is the kind of a content element
type ElementType string

const (
	ElementText           ElementType = "text"
	ElementRichText       ElementType = "rich_text"
	ElementNumber         ElementType = "number"
	ElementMultipleChoice ElementType = "multiple_choice"
	ElementDateTime       ElementType = "date_time"
	ElementAsset          ElementType = "asset"
	ElementModularContent ElementType = "modular_content"
	ElementTaxonomy       ElementType = "taxonomy"
	ElementURLSlug        ElementType = "url_slug"
	ElementCustom         ElementType = "custom"
	ElementGuidelines     ElementType = "guidelines"
)

// HasValue reports whether elements of this type carry a value in content items.
// Guidelines are editor instructions and never show up in delivered content.
func (t ElementType) HasValue() bool {
	return t != ElementGuidelines
}

// ContentType is a content type definition as listed by the Delivery API
type ContentType struct {
	System   System   `json:"system"`
	Elements Elements `json:"elements"`
}

// System holds the identifying attributes of a content type
type System struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Codename     string    `json:"codename"`
	LastModified time.Time `json:"last_modified"`
}

// Element describes one element of a content type
type Element struct {
	Codename string      `json:"codename,omitempty"`
	Type     ElementType `json:"type"`
	Name     string      `json:"name"`
}

// ValueElements returns the elements that carry content values, in API order
func (ct ContentType) ValueElements() []Element {
	elements := make([]Element, 0, len(ct.Elements))
	for _, el := range ct.Elements {
		if el.Type.HasValue() {
			elements = append(elements, el)
		}
	}
	return elements
}

// Elements is the element list of a content type. The API encodes it as a JSON
// object keyed by element codename; the key order of that object is kept.
type Elements []Element

// UnmarshalJSON decodes the element object in document order
func (e *Elements) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read elements: %w", err)
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("elements must be a JSON object, got %v", tok)
	}

	var elements Elements
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read element codename: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected element key %v", tok)
		}

		var el Element
		if err := dec.Decode(&el); err != nil {
			return fmt.Errorf("failed to decode element %s: %w", key, err)
		}
		if el.Codename == "" {
			el.Codename = key
		}
		elements = append(elements, el)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read elements: %w", err)
	}

	*e = elements
	return nil
}

// MarshalJSON encodes the elements as an object keyed by codename, in order
func (e Elements) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, el := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(el.Codename)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
