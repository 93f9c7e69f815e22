package record

import (
	"iter"
	"slices"
)

// Record is a JSON object whose keys keep their insertion order.
//
// Values are any of: string, [json.Number], bool, nil, []any, or *Record.
// The zero value is an empty record ready to use.
type Record struct {
	keys   []string
	values map[string]any
}

// New returns an empty record with room for n keys.
func New(n int) *Record {
	return &Record{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Len returns the number of keys in r.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}

	return len(r.keys)
}

// Keys returns the keys of r in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.keys)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}

	v, ok := r.values[key]

	return v, ok
}

// Set stores v under key. A new key is appended to the key order; an existing
// key keeps its original position and only its value is replaced.
func (r *Record) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}

	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.values[key] = v
}

// All returns an iterator over the key/value pairs of r in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}

		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Lookup walks a nested key path starting at r. Every intermediate value must
// itself be a *Record; a missing key or a non-object intermediate yields
// (nil, false). An empty path yields (nil, false).
func (r *Record) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	cur := r

	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return nil, false
		}

		if i == len(path)-1 {
			return v, true
		}

		next, ok := v.(*Record)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return nil, false
}

// Clone returns a shallow copy of r. Nested values are shared.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	return &Record{
		keys:   slices.Clone(r.keys),
		values: cloneMap(r.values),
	}
}

func cloneMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}
