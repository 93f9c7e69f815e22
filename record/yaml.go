package record

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// MarshalYAML implements yaml.InterfaceMarshaler, emitting r as a mapping
// with keys in insertion order.
func (r *Record) MarshalYAML() (any, error) {
	return toYAML(r), nil
}

func toYAML(v any) any {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			return nil
		}

		m := make(yaml.MapSlice, 0, t.Len())
		for k, e := range t.All() {
			m = append(m, yaml.MapItem{Key: k, Value: toYAML(e)})
		}

		return m
	case []any:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = toYAML(e)
		}

		return a
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}

		if f, err := t.Float64(); err == nil {
			return f
		}

		return t.String()
	default:
		return v
	}
}
