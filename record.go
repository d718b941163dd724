package circulars

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value string
}

// Record is a string mapping that remembers insertion order.
//
// Setting an existing key replaces its value but keeps its original
// position, so rows whose headers collide still serialise deterministically.
// The zero value is an empty record ready to use.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns a record populated with the given fields in order.
func NewRecord(fields ...Field) *Record {
	r := &Record{}
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set stores value under key.
func (r *Record) Set(key, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.fields)
}

// MarshalJSON encodes the record as a JSON object in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := r.writeFields(&buf); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) writeFields(buf *bytes.Buffer) error {
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(buf, f.Key, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes a flat JSON object of strings, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		r.Set(key, value)
		return nil
	})
}

// writeMember writes a single "key":value member.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// decodeObject walks the members of a JSON object in document order.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
