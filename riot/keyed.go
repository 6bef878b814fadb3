package riot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyPayload = errors.New("response payload is empty")

// decodeKeyed returns the values of a JSON object in the order their keys
// first appear in the payload. A repeated key keeps its first position and
// takes the last value.
func decodeKeyed(raw json.RawMessage) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode keyed payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode keyed payload: expected object, got %v", tok)
	}

	var values []json.RawMessage
	seen := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode keyed payload key: %w", err)
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode keyed payload value: %w", err)
		}
		if idx, ok := seen[key]; ok {
			values[idx] = value
			continue
		}
		seen[key] = len(values)
		values = append(values, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode keyed payload: %w", err)
	}
	return values, nil
}

// firstKeyed returns the first value of a keyed object.
func firstKeyed(raw json.RawMessage) (json.RawMessage, error) {
	values, err := decodeKeyed(raw)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmptyPayload
	}
	return values[0], nil
}

// field extracts one top-level member of a JSON object.
func field(raw json.RawMessage, name string) (json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	value, ok := members[name]
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	return value, nil
}

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response has no %q field", e.Field)
}
