package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID identifies a course, module or lesson. Upstream services send either
// JSON strings or numbers, so identifiers are always compared as text.
type ID string

// UnmarshalJSON accepts strings, numbers and booleans
func (id *ID) UnmarshalJSON(data []byte) error {
	text, _, err := coerceText(data)
	if err != nil {
		return err
	}
	*id = ID(text)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Text is a freeform field coerced to text. Falsy JSON values (null, false,
// 0, "") become the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	text, truthy, err := coerceText(data)
	if err != nil {
		return err
	}
	if !truthy {
		text = ""
	}
	*t = Text(text)
	return nil
}

// Trimmed returns the text without surrounding whitespace
func (t Text) Trimmed() string {
	return strings.TrimSpace(string(t))
}

func (t Text) String() string {
	return string(t)
}

// coerceText renders a JSON value as text and reports whether the value is
// truthy. Arrays read as their elements joined with commas, with null
// elements empty, so [] and [" "] are blank. Objects keep their raw JSON.
func coerceText(data []byte) (text string, truthy bool, err error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return "", false, nil
	}
	switch raw[0] {
	case 'n':
		return "", false, nil
	case 't':
		return "true", true, nil
	case 'f':
		return "false", false, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, s != "", nil
	case '[':
		text, err := joinElements(raw)
		return text, true, err
	case '{':
		return string(raw), true, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return "", false, err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), f != 0, nil
}

func joinElements(raw []byte) (string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		text, _, err := coerceText(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ","), nil
}
