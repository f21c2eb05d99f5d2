package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SlidesKind tags which representation a lesson's slides arrived in
type SlidesKind int

const (
	// SlidesAbsent no slides, or slides in a shape that can't be inspected
	SlidesAbsent SlidesKind = iota
	// SlidesRaw an already decoded ordered sequence
	SlidesRaw
	// SlidesEncoded a string holding a JSON array that still needs decoding
	SlidesEncoded
)

// Slides is the slide deck of a lesson. Slide objects are opaque to this
// service and kept as raw JSON.
type Slides struct {
	Kind    SlidesKind
	Items   []json.RawMessage
	Encoded string
}

// RawSlides builds an already decoded deck
func RawSlides(items ...json.RawMessage) Slides {
	return Slides{Kind: SlidesRaw, Items: items}
}

// EncodedSlides builds a deck still in its serialized form
func EncodedSlides(text string) Slides {
	return Slides{Kind: SlidesEncoded, Encoded: text}
}

// DecodeSlides decodes a serialized slide sequence
func DecodeSlides(text string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Normalize decodes an encoded deck once. A deck that fails to decode
// becomes absent.
func (s Slides) Normalize() Slides {
	if s.Kind != SlidesEncoded {
		return s
	}
	if strings.TrimSpace(s.Encoded) == "" {
		return Slides{}
	}
	items, err := DecodeSlides(s.Encoded)
	if err != nil {
		return Slides{}
	}
	return RawSlides(items...)
}

// UnmarshalJSON sorts the incoming value into one of the three kinds. It
// never fails: values of any other type are treated as absent.
func (s *Slides) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	*s = Slides{}
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			*s = RawSlides(items...)
		}
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			*s = EncodedSlides(text)
		}
	}
	return nil
}

// MarshalJSON writes the deck back in the representation it holds
func (s Slides) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SlidesRaw:
		if s.Items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.Items)
	case SlidesEncoded:
		return json.Marshal(s.Encoded)
	}
	return []byte("null"), nil
}
