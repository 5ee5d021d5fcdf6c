// Package query flattens filter and pagination objects into the bracketed
// query strings the admin API expects: nested keys as key[sub]=v and arrays
// as key[0]=a&key[1]=b.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Param is one key of an Object.
type Param struct {
	Key   string
	Value any
}

// Object is an insertion-ordered set of parameters. Values may be scalars,
// nested Objects, slices or nil.
type Object []Param

// Set replaces the value of key in place, or appends it.
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Param{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, p := range o {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Serialize encodes obj. It does not filter values, see Compact.
func Serialize(obj Object) string {
	parts := make([]string, 0, len(obj))
	serializeInto(&parts, obj, "")
	return strings.Join(parts, "&")
}

func serializeInto(parts *[]string, obj Object, prefix string) {
	for _, p := range obj {
		key := p.Key
		if prefix != "" {
			key = prefix + "[" + p.Key + "]"
		}
		serializeValue(parts, key, p.Value)
	}
}

func serializeValue(parts *[]string, key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case Object:
		serializeInto(parts, v, key)
		return
	case map[string]any:
		serializeInto(parts, fromMap(v), key)
		return
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		// index brackets stay literal, only the key itself is encoded
		encodedKey := Escape(key)
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if nested, ok := asObject(elem); ok {
				serializeInto(parts, nested, fmt.Sprintf("%s[%d]", key, i))
				continue
			}
			s, ok := scalarString(elem)
			if !ok {
				continue
			}
			*parts = append(*parts, fmt.Sprintf("%s[%d]=%s", encodedKey, i, Escape(s)))
		}
		return
	}

	if s, ok := scalarString(rv.Interface()); ok {
		*parts = append(*parts, Escape(key)+"="+Escape(s))
	}
}

func asObject(v any) (Object, bool) {
	switch o := v.(type) {
	case Object:
		return o, true
	case map[string]any:
		return fromMap(o), true
	}
	return nil, false
}

// Maps carry no order, keys are sorted so equal maps serialize equally.
func fromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := make(Object, 0, len(keys))
	for _, k := range keys {
		obj = append(obj, Param{Key: k, Value: m[k]})
	}
	return obj
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case fmt.Stringer:
		return s.String(), true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return fmt.Sprint(rv.Interface()), true
}

// Parse decodes a flat query string back into an Object of string values.
// Bracketed keys are kept verbatim, Parse does not rebuild nesting.
func Parse(raw string) (Object, error) {
	raw = strings.TrimPrefix(raw, "?")
	obj := Object{}
	if raw == "" {
		return obj, nil
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := Unescape(k)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", k, err)
		}
		value, err := Unescape(v)
		if err != nil {
			return nil, fmt.Errorf("invalid query value for %q: %w", key, err)
		}
		obj = append(obj, Param{Key: key, Value: value})
	}
	return obj, nil
}

// Compact drops nil values, nil pointers and empty strings, recursing into
// nested objects. Nested objects left empty are dropped too.
func Compact(obj Object) Object {
	out := make(Object, 0, len(obj))
	for _, p := range obj {
		switch v := p.Value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
		case Object:
			nested := Compact(v)
			if len(nested) == 0 {
				continue
			}
			out = append(out, Param{Key: p.Key, Value: nested})
			continue
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Pointer && rv.IsNil() {
				continue
			}
			if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.String && rv.Elem().String() == "" {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// FromStruct converts v into an Object following its JSON encoding, so
// field order and json tag names (including omitempty) are honoured.
func FromStruct(v any) (Object, error) {
	if v == nil {
		return Object{}, nil
	}
	if obj, ok := v.(Object); ok {
		return obj, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode query object: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	val, err := decodeOrdered(dec)
	if err != nil {
		return nil, fmt.Errorf("decode query object: %w", err)
	}
	obj, ok := val.(Object)
	if !ok {
		return nil, fmt.Errorf("query object must encode to a JSON object, got %T", val)
	}
	return obj, nil
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, Param{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil && err != io.EOF {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil && err != io.EOF {
				return nil, err
			}
			return arr, nil
		}
	}
	return tok, nil
}
