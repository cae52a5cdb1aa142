// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a decoded configuration value. It is always one of:
//
//   - nil
//   - bool
//   - string
//   - json.Number
//   - []Value
//   - *Object
//
// Numbers are kept as [json.Number] so their command line representation
// matches the source text exactly.
type Value = any

// Object is a string keyed collection of [Value]s which remembers the
// order in which keys first appeared. Configuration objects must keep
// their document order because argument projection emits keys in that
// order and re-encoding must round-trip it.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// Get returns the value stored under key and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set stores v under key. A new key is appended to the iteration order;
// an existing key keeps its position and only its value is replaced.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Delete removes key from the object. Deleting an absent key is a no-op.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in iteration order. The returned slice is a copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Map converts the object into a plain map[string]any, recursively
// converting nested Objects and lists. Numbers are converted to int64
// when integral and float64 otherwise. Key order is not preserved;
// callers which care about order should use the Object directly.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, len(o.keys))
	for k, v := range o.vals {
		m[k] = valueToAny(v)
	}
	return m
}

func valueToAny(v Value) any {
	switch x := v.(type) {
	case *Object:
		return x.Map()
	case []Value:
		vs := make([]any, len(x))
		for i := range x {
			vs[i] = valueToAny(x[i])
		}
		return vs
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return x
	}
}

// MarshalJSON implements the [json.Marshaler] interface. Keys are
// emitted in iteration order and the output is compact.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// clone returns a shallow copy of the object. Nested values are shared.
func (o *Object) clone() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		vals: make(map[string]Value, len(o.vals)),
	}
	for k, v := range o.vals {
		c.vals[k] = v
	}
	return c
}

// UnexpectedTokenError occurs when the configuration source contains a
// JSON token which is valid syntax but invalid in its position, for
// example a top level value which is not an object.
type UnexpectedTokenError struct {
	Token any
}

// Error implements the [builtin.error] interface.
func (e UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token in configuration: %v", e.Token)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, bool, json.Number or nil
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeList(dec)
	default:
		return nil, UnexpectedTokenError{Token: tok}
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, UnexpectedTokenError{Token: tok}
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	// consume the closing '}'
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeList(dec *json.Decoder) ([]Value, error) {
	vs := make([]Value, 0)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	// consume the closing ']'
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return vs, nil
}
