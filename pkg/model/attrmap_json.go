package model

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/json-iterator/go"
)

var jsonCfg = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	_ json.Marshaler   = &AttrMap{}
	_ json.Unmarshaler = &AttrMap{}
)

// MarshalJSON implements json.Marshaler, preserving key order.
func (m *AttrMap) MarshalJSON() ([]byte, error) {
	stream := jsonCfg.BorrowStream(nil)
	defer jsonCfg.ReturnStream(stream)
	m.writeJSON(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving the key order of
// the document.
func (m *AttrMap) UnmarshalJSON(data []byte) error {
	iter := jsonCfg.BorrowIterator(data)
	defer jsonCfg.ReturnIterator(iter)
	val := readJSONValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	decoded, ok := val.(*AttrMap)
	if !ok {
		return fmt.Errorf("expected a json object for attributes, got %T", val)
	}
	m.items = decoded.items
	return nil
}

func (m *AttrMap) writeJSON(stream *jsoniter.Stream) {
	stream.WriteObjectStart()
	if m != nil {
		for i, it := range m.items {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(it.key)
			writeJSONValue(stream, it.value)
		}
	}
	stream.WriteObjectEnd()
}

func writeJSONValue(stream *jsoniter.Stream, v AttrValue) {
	switch val := v.(type) {
	case nil:
		stream.WriteNil()
	case *AttrMap:
		val.writeJSON(stream)
	case []AttrValue:
		stream.WriteArrayStart()
		for i, e := range val {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSONValue(stream, e)
		}
		stream.WriteArrayEnd()
	default:
		stream.WriteVal(val)
	}
}

func readJSONValue(iter *jsoniter.Iterator) AttrValue {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		decoded := NewAttrMap()
		iter.ReadObjectCB(func(i *jsoniter.Iterator, key string) bool {
			decoded.Set(key, readJSONValue(i))
			return i.Error == nil
		})
		return decoded
	case jsoniter.ArrayValue:
		out := make([]AttrValue, 0, 4)
		iter.ReadArrayCB(func(i *jsoniter.Iterator) bool {
			out = append(out, readJSONValue(i))
			return i.Error == nil
		})
		return out
	case jsoniter.NumberValue:
		return NormalizeValue(iter.ReadNumber())
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readJSONValue", "unexpected token")
		return nil
	}
}
