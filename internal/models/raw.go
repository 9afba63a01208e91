package models

import (
	"bytes"
	"encoding/json"
)

// RawExpense is an expense record exactly as supplied by a caller or read
// from an expense file. Payer, amount and description keep whatever JSON
// value they arrived with; the sanitizer is responsible for coercing them.
type RawExpense struct {
	Payer        any             `json:"payer"`
	Amount       any             `json:"amount"`
	Description  any             `json:"description"`
	Participants RawParticipants `json:"participants"`
}

// RawPair is one name/value entry of an object-shaped participants field.
type RawPair struct {
	Key   string
	Value any
}

// RawParticipants holds the participants field of a raw record without
// committing to a shape. A JSON array populates List, a JSON object
// populates Pairs (in document order), and any other value leaves the
// field shapeless, which the sanitizer treats as an empty equal split.
type RawParticipants struct {
	List  []any
	Pairs []RawPair

	shape participantShape
}

type participantShape int

const (
	shapeNone participantShape = iota
	shapeList
	shapeObject
)

// NewRawList builds a list-shaped participants value.
func NewRawList(entries []any) RawParticipants {
	return RawParticipants{List: entries, shape: shapeList}
}

// NewRawNames builds a list-shaped participants value from plain names.
func NewRawNames(names ...string) RawParticipants {
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	return NewRawList(entries)
}

// NewRawObject builds an object-shaped participants value. Pair order is
// preserved all the way through sanitization.
func NewRawObject(pairs []RawPair) RawParticipants {
	return RawParticipants{Pairs: pairs, shape: shapeObject}
}

// IsList reports whether the field arrived as a JSON array.
func (p RawParticipants) IsList() bool { return p.shape == shapeList }

// IsObject reports whether the field arrived as a JSON object.
func (p RawParticipants) IsObject() bool { return p.shape == shapeObject }

// UnmarshalJSON decodes either participants shape. Objects are walked
// token by token so that key order survives; decoding into a Go map would
// lose it and break the first-entry rounding rule downstream.
func (p *RawParticipants) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		*p = RawParticipants{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []any
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*p = RawParticipants{List: list, shape: shapeList}
		return nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil { // opening brace
			return err
		}
		var pairs []RawPair
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				continue
			}
			var value any
			if err := dec.Decode(&value); err != nil {
				return err
			}
			pairs = append(pairs, RawPair{Key: key, Value: value})
		}
		*p = RawParticipants{Pairs: pairs, shape: shapeObject}
		return nil

	default:
		// Scalar or null: validate, then record "no usable shape".
		var discard any
		if err := json.Unmarshal(data, &discard); err != nil {
			return err
		}
		*p = RawParticipants{}
		return nil
	}
}

// MarshalJSON writes the field back in the shape it arrived in. Shapeless
// values marshal as an empty array, matching the sanitizer's fallback.
func (p RawParticipants) MarshalJSON() ([]byte, error) {
	switch p.shape {
	case shapeObject:
		return marshalOrderedObject(p.Pairs)
	case shapeList:
		if p.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.List)
	default:
		return []byte("[]"), nil
	}
}

// marshalOrderedObject writes pairs as a JSON object in slice order.
func marshalOrderedObject(pairs []RawPair) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeRaw parses a JSON array of expense records. Entries that are not
// valid record objects are skipped so one broken row cannot poison a whole
// file; the error return is reserved for input that is not an array at all.
func DecodeRaw(data []byte) ([]RawExpense, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	records := make([]RawExpense, 0, len(entries))
	for _, entry := range entries {
		// Only objects can be records. The explicit check matters for
		// null, which json.Unmarshal accepts by leaving the target
		// untouched instead of failing.
		trimmed := bytes.TrimLeft(entry, " \t\r\n")
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var rec RawExpense
		if err := json.Unmarshal(entry, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
