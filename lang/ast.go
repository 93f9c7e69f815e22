package lang

import (
	"strconv"
	"strings"
)

// Expr is an expression node evaluated once per record.
//
// The set of implementations is closed: [Literal], [FieldPath],
// [FieldWithModifiers], [Concat], [RawRecord], and [Serial].
type Expr interface {
	// String renders the expression as script source.
	String() string

	expr()
}

// Literal is a fixed string. Text is stored as written between the quotes;
// escape sequences are decoded on evaluation.
type Literal struct {
	Text string
}

// FieldPath looks up a possibly nested key of the current record.
type FieldPath struct {
	Path []string
}

// FieldWithModifiers is a field lookup post-processed by modifiers.
type FieldWithModifiers struct {
	Path      []string
	Modifiers []Modifier
}

// Concat joins the string forms of its parts left to right.
type Concat struct {
	Parts []Expr
}

// RawRecord evaluates to the whole current record.
type RawRecord struct{}

// Serial evaluates to the next value of the run's serial counter.
type Serial struct{}

func (Literal) expr()            {}
func (FieldPath) expr()          {}
func (FieldWithModifiers) expr() {}
func (Concat) expr()             {}
func (RawRecord) expr()          {}
func (Serial) expr()             {}

func (e Literal) String() string   { return `"` + e.Text + `"` }
func (e FieldPath) String() string { return formatPath(e.Path) }
func (RawRecord) String() string   { return "raw()" }
func (Serial) String() string      { return "serial()" }

func (e FieldWithModifiers) String() string {
	var sb strings.Builder

	sb.WriteString(formatPath(e.Path))

	for _, m := range e.Modifiers {
		sb.WriteString(".")
		sb.WriteString(m.String())
	}

	return sb.String()
}

func (e Concat) String() string {
	part := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		part[i] = p.String()
	}

	return strings.Join(part, " + ")
}

func formatPath(path []string) string {
	return "@" + strings.Join(path, ".")
}

// ModifierKind selects how a [Modifier] rewrites a field value.
type ModifierKind int

// Modifier kinds.
const (
	ModPrefix ModifierKind = iota
	ModSuffix
	ModDefault
)

// String returns the script name of k.
func (k ModifierKind) String() string {
	switch k {
	case ModPrefix:
		return "prefix"
	case ModSuffix:
		return "suffix"
	case ModDefault:
		return "default"
	default:
		return "ModifierKind(" + strconv.Itoa(int(k)) + ")"
	}
}

var modifierKinds = map[string]ModifierKind{
	"prefix":  ModPrefix,
	"suffix":  ModSuffix,
	"default": ModDefault,
}

// Modifier is one call such as prefix("x") attached to a field.
type Modifier struct {
	Kind ModifierKind
	Text string
}

// String renders m as a call expression.
func (m Modifier) String() string {
	return m.Kind.String() + `("` + m.Text + `")`
}

// Command is one top-level statement of a script.
//
// The set of implementations is closed: [Input], [Output], [Print],
// [PrintLine], and [Transform].
type Command interface {
	// String renders the command as script source on a single line.
	String() string

	command()
}

// Input loads records from a JSONL file.
type Input struct {
	Path string
}

// Output names the JSONL file the final records are written to.
type Output struct {
	Path string
}

// Print writes every current record to the console.
type Print struct{}

// PrintLine writes the Line-th current record (1-based) to the console.
type PrintLine struct {
	Line uint64
}

// Transform builds a new record from each input record.
type Transform struct {
	Assignments []Assignment
}

// Assignment binds the value of an expression to an output field.
type Assignment struct {
	Field string
	Value Expr
}

func (Input) command()     {}
func (Output) command()    {}
func (Print) command()     {}
func (PrintLine) command() {}
func (Transform) command() {}

func (c Input) String() string  { return `input "` + c.Path + `";` }
func (c Output) String() string { return `output "` + c.Path + `";` }
func (Print) String() string    { return "print;" }

func (c PrintLine) String() string {
	return "print line " + strconv.FormatUint(c.Line, 10) + ";"
}

func (c Transform) String() string {
	if len(c.Assignments) == 0 {
		return "transform {}"
	}

	part := make([]string, len(c.Assignments))
	for i, a := range c.Assignments {
		part[i] = a.String()
	}

	return "transform { " + strings.Join(part, " ") + " }"
}

func (a Assignment) String() string {
	return a.Field + " = " + a.Value.String() + ";"
}

// Program is the ordered list of commands parsed from one script.
type Program []Command
