package record

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestRecordSetKeepsOrder(t *testing.T) {
	var r Record

	r.Set("b", "1")
	r.Set("a", "2")
	r.Set("c", "3")
	r.Set("a", "4")

	if got, want := r.Keys(), []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	if v, _ := r.Get("a"); v != "4" {
		t.Errorf("Get(a) = %v, want 4", v)
	}

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRecordAll(t *testing.T) {
	r := New(2)
	r.Set("x", "1")
	r.Set("y", "2")

	var keys []string
	for k := range r.All() {
		keys = append(keys, k)

		break
	}

	if !slices.Equal(keys, []string{"x"}) {
		t.Errorf("All() with early break = %v", keys)
	}
}

func TestRecordNil(t *testing.T) {
	var r *Record

	if r.Len() != 0 || r.Keys() != nil {
		t.Error("nil record should be empty")
	}

	if _, ok := r.Get("a"); ok {
		t.Error("Get on nil record should miss")
	}

	if r.Clone() != nil {
		t.Error("Clone of nil record should be nil")
	}
}

func TestRecordLookup(t *testing.T) {
	r, err := parseObject([]byte(`{"a":{"b":{"c":"deep"},"n":7},"s":"top"}`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path []string
		want any
		ok   bool
	}{
		{"top level", []string{"s"}, "top", true},
		{"nested", []string{"a", "b", "c"}, "deep", true},
		{"number", []string{"a", "n"}, json.Number("7"), true},
		{"missing", []string{"z"}, nil, false},
		{"through string", []string{"s", "x"}, nil, false},
		{"through number", []string{"a", "n", "x"}, nil, false},
		{"empty path", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.path...)
			if ok != tt.ok {
				t.Fatalf("Lookup(%v) ok = %v, want %v", tt.path, ok, tt.ok)
			}

			if ok && got != tt.want {
				t.Errorf("Lookup(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRecordCloneIsShallow(t *testing.T) {
	r, err := parseObject([]byte(`{"a":"1","n":{"x":"y"}}`))
	if err != nil {
		t.Fatal(err)
	}

	c := r.Clone()
	c.Set("a", "changed")
	c.Set("b", "new")

	if v, _ := r.Get("a"); v != "1" {
		t.Errorf("original modified through clone: a = %v", v)
	}

	if r.Len() != 2 {
		t.Errorf("original gained keys: %v", r.Keys())
	}

	rn, _ := r.Get("n")
	cn, _ := c.Get("n")

	if rn.(*Record) != cn.(*Record) {
		t.Error("nested record should be shared")
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	tests := []string{
		`{}`,
		`{"b":1,"a":2}`,
		`{"q":"2+2","lvl":"1"}`,
		`{"n":1.50,"e":-2e10,"big":123456789012345678901234567890}`,
		`{"nested":{"z":true,"y":[1,"x",null,{"k":false}]},"after":""}`,
		`{"html":"<a href=\"x\">&</a>","tab":"a\tb","slash":"a\\b"}`,
		`{"arr":[],"obj":{}}`,
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			var r Record
			if err := json.Unmarshal([]byte(in), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			out, err := r.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}

			if string(out) != in {
				t.Errorf("round trip:\n got %s\nwant %s", out, in)
			}
		})
	}
}

func TestUnmarshalJSONRejects(t *testing.T) {
	tests := []string{
		`[1,2]`,
		`"str"`,
		`42`,
		`null`,
		`{"a":1} {"b":2}`,
		`{"a":1`,
		`{"a":}`,
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			var r Record
			if err := r.UnmarshalJSON([]byte(in)); err == nil {
				t.Errorf("UnmarshalJSON(%s) succeeded", in)
			}
		})
	}
}

func TestMarshalSetValues(t *testing.T) {
	r := New(0)
	r.Set("s", "x")
	r.Set("i", 3)
	r.Set("f", false)
	r.Set("nil", nil)
	r.Set("list", []any{"a", json.Number("2")})

	out, err := r.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	want := `{"s":"x","i":3,"f":false,"nil":null,"list":["a",2]}`
	if string(out) != want {
		t.Errorf("MarshalJSON() = %s, want %s", out, want)
	}
}
