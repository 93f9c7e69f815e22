package lang

import (
	"errors"
	"testing"

	"github.com/ardnew/jdl/record"
)

func rec(t *testing.T, s string) *record.Record {
	t.Helper()

	var r record.Record
	if err := r.UnmarshalJSON([]byte(s)); err != nil {
		t.Fatalf("record %s: %v", s, err)
	}

	return &r
}

func evalString(t *testing.T, src string, r *record.Record, st *State) string {
	t.Helper()

	v, err := Evaluate(parseExpr(t, src), r, st)
	if err != nil {
		t.Fatalf("Evaluate(%s): %v", src, err)
	}

	s, ok := v.(string)
	if !ok {
		t.Fatalf("Evaluate(%s) = %T, want string", src, v)
	}

	return s
}

func TestEvaluateFields(t *testing.T) {
	r := rec(t, `{"s":"str","n":1.50,"b":true,"z":null,"arr":[1,"a"],"obj":{"k":"v","e":""},"empty":""}`)

	tests := []struct {
		expr string
		want string
	}{
		{`@s`, "str"},
		{`@n`, "1.50"},
		{`@b`, "true"},
		{`@z`, "null"},
		{`@arr`, `[1,"a"]`},
		{`@obj`, `{"k":"v","e":""}`},
		{`@obj.k`, "v"},
		{`@missing`, ""},
		{`@obj.missing`, ""},
		{`@s.deeper`, ""},
		{`@empty`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := evalString(t, tt.expr, r, NewState()); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateModifiers(t *testing.T) {
	tests := []struct {
		name   string
		record string
		expr   string
		want   string
	}{
		{"default on missing", `{}`, `@a.b.default("x")`, "x"},
		{"default on missing parent", `{"a":"flat"}`, `@a.b.default("x")`, "x"},
		{"default on empty", `{"a":{"b":""}}`, `@a.b.default("x")`, "x"},
		{"default keeps value", `{"a":{"b":"v"}}`, `@a.b.default("x")`, "v"},
		{"default keeps null", `{"a":null}`, `@a.default("x")`, "null"},
		{"first default wins", `{}`, `@a.default("one").default("two")`, "one"},
		{"empty default falls through", `{}`, `@a.default("").default("two")`, "two"},
		{"no affix on empty", `{"f":""}`, `@f.prefix("P").suffix("S")`, ""},
		{"no affix on missing", `{}`, `@f.prefix("P").suffix("S")`, ""},
		{"affix order", `{"f":"v"}`, `@f.suffix("1").prefix("2").suffix("3").prefix("4")`, "42v13"},
		{"default before affix", `{}`, `@f.prefix("<").default("d").suffix(">")`, "<d>"},
		{"escapes in modifiers", `{}`, `@f.default("a\tb").suffix("\n")`, "a\tb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalString(t, tt.expr, rec(t, tt.record), NewState())
			if got != tt.want {
				t.Errorf("%s on %s = %q, want %q", tt.expr, tt.record, got, tt.want)
			}
		})
	}
}

func TestEvaluateConcat(t *testing.T) {
	r := rec(t, `{"q":"2+2","lvl":"1"}`)
	st := NewState()

	got := evalString(t, `@q + "_" + @lvl.default("0") + "_" + serial()`, r, st)
	if got != "2+2_1_1" {
		t.Errorf("concat = %q, want %q", got, "2+2_1_1")
	}

	got = evalString(t, `"[" + raw() + "]"`, r, st)
	if got != "[]" {
		t.Errorf("concat with raw() = %q, want %q", got, "[]")
	}
}

func TestEvaluateSerial(t *testing.T) {
	st := NewState()
	r := rec(t, `{}`)

	if got := evalString(t, `serial() + "," + serial()`, r, st); got != "1,2" {
		t.Errorf("first = %q, want 1,2", got)
	}

	if got := evalString(t, `serial()`, r, st); got != "3" {
		t.Errorf("second = %q, want 3", got)
	}

	if st.Peek() != 4 {
		t.Errorf("Peek() = %d, want 4", st.Peek())
	}

	if got := evalString(t, `serial()`, r, NewState()); got != "1" {
		t.Errorf("fresh state = %q, want 1", got)
	}
}

func TestEvaluateLiteralDoesNotTouchSerial(t *testing.T) {
	st := NewState()

	evalString(t, `"a" + @x + "b"`, rec(t, `{"x":"y"}`), st)

	if st.Peek() != 1 {
		t.Errorf("Peek() = %d after literal-only evaluation", st.Peek())
	}
}

func TestEvaluateRaw(t *testing.T) {
	r := rec(t, `{"b":"1","a":{"x":2}}`)

	v, err := Evaluate(RawRecord{}, r, NewState())
	if err != nil {
		t.Fatal(err)
	}

	got, ok := v.(*record.Record)
	if !ok {
		t.Fatalf("raw() = %T, want *record.Record", v)
	}

	out, err := got.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	if string(out) != `{"b":"1","a":{"x":2}}` {
		t.Errorf("raw() = %s", out)
	}

	got.Set("c", "3")

	if r.Len() != 2 {
		t.Error("raw() result aliases the input record")
	}
}

type bogus struct{ Literal }

func TestEvaluateUnsupported(t *testing.T) {
	_, err := Evaluate(bogus{}, rec(t, `{}`), NewState())
	if !errors.Is(err, ErrUnsupportedExpr) {
		t.Errorf("error = %v, want ErrUnsupportedExpr", err)
	}

	_, err = Evaluate(Concat{Parts: []Expr{Literal{Text: "a"}, bogus{}}}, rec(t, `{}`), NewState())
	if !errors.Is(err, ErrUnsupportedExpr) {
		t.Errorf("nested error = %v, want ErrUnsupportedExpr", err)
	}
}

func TestStringify(t *testing.T) {
	r := record.New(1)
	r.Set("k", "<v>")

	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{nil, "null"},
		{false, "false"},
		{[]any{}, "[]"},
		{r, `{"k":"<v>"}`},
	}

	for _, tt := range tests {
		if got := Stringify(tt.in); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
