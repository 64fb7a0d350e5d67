package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// AttrValue is any value held by an attribute: a primitive, an *AttrMap
// dictionary or an []AttrValue list.
type AttrValue = interface{}

type attrItem struct {
	key   string
	value AttrValue
}

// AttrMap is an insertion ordered attribute dictionary.
//
// It retains the key order of the document it was built or decoded from:
// re-encoding a decoded document yields the same key order, in YAML as well
// as in JSON.
type AttrMap struct {
	items []attrItem
}

// NewAttrMap builds an empty ordered dictionary.
func NewAttrMap() *AttrMap {
	return &AttrMap{}
}

// Len yields the number of keys.
func (m *AttrMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Keys yields all keys in insertion order.
func (m *AttrMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.items))
	for _, it := range m.items {
		keys = append(keys, it.key)
	}
	return keys
}

// Get yields the value stored at key.
func (m *AttrMap) Get(key string) (AttrValue, bool) {
	if m == nil {
		return nil, false
	}
	for _, it := range m.items {
		if it.key == key {
			return it.value, true
		}
	}
	return nil, false
}

// Has tells if key is present.
func (m *AttrMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set inserts a key or replaces its value in place, keeping the original
// position of a replaced key.
func (m *AttrMap) Set(key string, value AttrValue) {
	for i, it := range m.items {
		if it.key == key {
			m.items[i].value = value
			return
		}
	}
	m.items = append(m.items, attrItem{key: key, value: value})
}

// Delete removes a key. It reports whether the key was present.
func (m *AttrMap) Delete(key string) bool {
	if m == nil {
		return false
	}
	for i, it := range m.items {
		if it.key == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Copy yields a deep copy: nested dictionaries and lists are copied
// recursively.
func (m *AttrMap) Copy() *AttrMap {
	out := &AttrMap{}
	if m == nil {
		return out
	}
	out.items = make([]attrItem, 0, len(m.items))
	for _, it := range m.items {
		out.items = append(out.items, attrItem{key: it.key, value: CopyValue(it.value)})
	}
	return out
}

// Equal compares two dictionaries on keys, key order and values.
func (m *AttrMap) Equal(o *AttrMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m == nil || o == nil {
		return true
	}
	for i, it := range m.items {
		ot := o.items[i]
		if it.key != ot.key || !valueEqual(it.value, ot.value) {
			return false
		}
	}
	return true
}

// CopyValue deep-copies an attribute value.
func CopyValue(v AttrValue) AttrValue {
	switch val := v.(type) {
	case *AttrMap:
		return val.Copy()
	case []AttrValue:
		out := make([]AttrValue, 0, len(val))
		for _, e := range val {
			out = append(out, CopyValue(e))
		}
		return out
	default:
		return v
	}
}

func valueEqual(a, b AttrValue) bool {
	am, aok := a.(*AttrMap)
	bm, bok := b.(*AttrMap)
	if aok || bok {
		return aok && bok && am.Equal(bm)
	}
	as, aok := a.([]AttrValue)
	bs, bok := b.([]AttrValue)
	if aok || bok {
		if !aok || !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// NormalizeValue converts a value produced by a yaml or json decoder, or
// passed in by a caller, into canonical attribute form: dictionaries become
// *AttrMap, lists become []AttrValue, integral numbers become int64 and
// other numbers float64. Unordered map types get their keys sorted. Times
// become their conventional string form, YYYY-MM-DD at midnight UTC and
// RFC3339 otherwise, so date-valued yaml scalars survive round-trips as
// plain names.
func NormalizeValue(v interface{}) AttrValue {
	switch val := v.(type) {
	case nil:
		return nil
	case *AttrMap:
		return val
	case yaml.MapSlice:
		m := NewAttrMap()
		for _, it := range val {
			m.Set(keyString(it.Key), NormalizeValue(it.Value))
		}
		return m
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewAttrMap()
		for _, k := range keys {
			m.Set(k, NormalizeValue(val[k]))
		}
		return m
	case map[interface{}]interface{}:
		keys := make([]string, 0, len(val))
		byKey := make(map[string]interface{}, len(val))
		for k, value := range val {
			ks := keyString(k)
			keys = append(keys, ks)
			byKey[ks] = value
		}
		sort.Strings(keys)
		m := NewAttrMap()
		for _, k := range keys {
			m.Set(k, NormalizeValue(byKey[k]))
		}
		return m
	case []interface{}:
		out := make([]AttrValue, 0, len(val))
		for _, e := range val {
			out = append(out, NormalizeValue(e))
		}
		return out
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case time.Time:
		return timeName(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return normalizedUint(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return normalizedUint(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// normalizedUint keeps unsigned values in the signed integer domain;
// values beyond MaxInt64 degrade to float64 rather than flip sign.
func normalizedUint(v uint64) AttrValue {
	if v > math.MaxInt64 {
		return float64(v)
	}
	return int64(v)
}

func keyString(k interface{}) string {
	switch val := k.(type) {
	case string:
		return val
	case time.Time:
		return timeName(val)
	default:
		return fmt.Sprint(val)
	}
}

// timeName renders times decoded by yaml from plain scalars back into the
// names they were written as.
func timeName(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339Nano)
}

// MarshalYAML implements yaml.Marshaler, preserving key order.
func (m *AttrMap) MarshalYAML() (interface{}, error) {
	return m.mapSlice(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, preserving the key order of
// the document.
func (m *AttrMap) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err != nil {
		return err
	}
	m.items = m.items[:0]
	for _, it := range ms {
		m.Set(keyString(it.Key), NormalizeValue(it.Value))
	}
	return nil
}

func (m *AttrMap) mapSlice() yaml.MapSlice {
	if m == nil {
		return yaml.MapSlice{}
	}
	ms := make(yaml.MapSlice, 0, len(m.items))
	for _, it := range m.items {
		ms = append(ms, yaml.MapItem{Key: it.key, Value: yamlValue(it.value)})
	}
	return ms
}

func yamlValue(v AttrValue) interface{} {
	switch val := v.(type) {
	case *AttrMap:
		return val.mapSlice()
	case []AttrValue:
		out := make([]interface{}, 0, len(val))
		for _, e := range val {
			out = append(out, yamlValue(e))
		}
		return out
	default:
		return v
	}
}
