package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/jdl/record"
)

// Format writes p as script source. With indent > 0 each assignment of a
// transform is placed on its own line, indented by that many spaces;
// otherwise every command is written on a single line.
func (p Program) Format(_ context.Context, w io.Writer, indent int) error {
	for _, cmd := range p {
		t, ok := cmd.(Transform)
		if !ok || indent <= 0 || len(t.Assignments) == 0 {
			if _, err := fmt.Fprintln(w, cmd.String()); err != nil {
				return err
			}

			continue
		}

		if _, err := fmt.Fprintln(w, "transform {"); err != nil {
			return err
		}

		pad := strings.Repeat(" ", indent)
		for _, a := range t.Assignments {
			if _, err := fmt.Fprintln(w, pad+a.String()); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes p as a JSON array of command objects.
func (p Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return writeJSON(w, p.ToNative(), indent)
}

// FormatYAML writes p as a YAML sequence of command mappings.
func (p Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return writeYAML(ctx, w, p.ToNative(), indent)
}

// ToNative converts p to plain values with ordered mappings, suitable for
// encoding.
func (p Program) ToNative() []any {
	out := make([]any, len(p))
	for i, cmd := range p {
		out[i] = commandNative(cmd)
	}

	return out
}

func commandNative(cmd Command) *record.Record {
	r := record.New(2)

	switch c := cmd.(type) {
	case Input:
		r.Set("command", "input")
		r.Set("path", c.Path)
	case Output:
		r.Set("command", "output")
		r.Set("path", c.Path)
	case Print:
		r.Set("command", "print")
	case PrintLine:
		r.Set("command", "print line")
		r.Set("line", json.Number(fmt.Sprint(c.Line)))
	case Transform:
		list := make([]any, len(c.Assignments))
		for i, a := range c.Assignments {
			e := record.New(2)
			e.Set("field", a.Field)
			e.Set("value", exprNative(a.Value))
			list[i] = e
		}

		r.Set("command", "transform")
		r.Set("assignments", list)
	}

	return r
}

func exprNative(e Expr) *record.Record {
	r := record.New(2)

	switch e := e.(type) {
	case Literal:
		r.Set("literal", e.Text)
	case FieldPath:
		r.Set("field", strings2any(e.Path))
	case FieldWithModifiers:
		mods := make([]any, len(e.Modifiers))
		for i, m := range e.Modifiers {
			mr := record.New(1)
			mr.Set(m.Kind.String(), m.Text)
			mods[i] = mr
		}

		r.Set("field", strings2any(e.Path))
		r.Set("modifiers", mods)
	case Concat:
		parts := make([]any, len(e.Parts))
		for i, part := range e.Parts {
			parts[i] = exprNative(part)
		}

		r.Set("concat", parts)
	case RawRecord:
		r.Set("call", "raw")
	case Serial:
		r.Set("call", "serial")
	}

	return r
}

func strings2any(s []string) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}

	return a
}

// FormatTokens writes toks one per line as a kind label and source text.
func FormatTokens(_ context.Context, w io.Writer, toks []Token) error {
	for _, tok := range toks {
		if _, err := fmt.Fprintf(w, "%-11s %s\n", tok.Kind, tok.Source()); err != nil {
			return err
		}
	}

	return nil
}

// FormatTokensJSON writes toks as a JSON array.
func FormatTokensJSON(_ context.Context, w io.Writer, toks []Token, indent int) error {
	return writeJSON(w, tokensNative(toks), indent)
}

// FormatTokensYAML writes toks as a YAML sequence.
func FormatTokensYAML(ctx context.Context, w io.Writer, toks []Token, indent int) error {
	return writeYAML(ctx, w, tokensNative(toks), indent)
}

func tokensNative(toks []Token) []any {
	out := make([]any, len(toks))

	for i, tok := range toks {
		r := record.New(2)
		r.Set("kind", strings.Trim(tok.Kind.String(), "'"))

		switch tok.Kind {
		case KindNumber:
			r.Set("value", json.Number(tok.Text))
		case KindString, KindIdent, KindField, KindComment, KindUnknown:
			r.Set("text", tok.Text)
		default:
		}

		out[i] = r
	}

	return out
}

func writeJSON(w io.Writer, v []any, indent int) error {
	var buf bytes.Buffer
	if err := record.AppendJSON(&buf, v); err != nil {
		return err
	}

	data := buf.Bytes()

	if indent > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", strings.Repeat(" ", indent)); err != nil {
			return err
		}

		data = out.Bytes()
	}

	_, err := w.Write(append(data, '\n'))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, v []any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
