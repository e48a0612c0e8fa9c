package evaluator

import (
	"bytes"
	"encoding/json"

	"github.com/calumari/jwalk"
)

// Plain converts an evaluated value into the representation the schema
// validator consumes: jwalk.D becomes map[string]any and jwalk.A becomes
// []any, recursively. Key ordering is lost in the projection; callers keep
// the original ordered value.
func Plain(v any) any {
	switch val := v.(type) {
	case jwalk.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = Plain(e.Value)
		}
		return m
	case jwalk.A:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = Plain(e)
		}
		return s
	default:
		return v
	}
}

// MarshalOrdered renders an evaluated value as JSON with object keys in
// their original source order.
func MarshalOrdered(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeOrdered(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeOrdered(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case jwalk.D:
		buf.WriteByte('{')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeOrdered(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case jwalk.A:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeOrdered(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
