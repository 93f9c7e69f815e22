package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/jdl/lang"
)

// Output formats shared by the tokens and ast commands.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Tokens prints the lexer output for a script.
type Tokens struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Script []string `arg:"" default:"-" help:"Script file(s), or '-' for stdin." name:"script"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sc, err := readScript(ctx, t.Script)
	if err != nil {
		return err
	}

	toks := lang.Tokenize(sc.text)
	w := streamsFrom(ctx).stdout

	switch t.Format {
	case formatJSON:
		err = lang.FormatTokensJSON(ctx, w, toks, t.Indent)
	case formatYAML:
		err = lang.FormatTokensYAML(ctx, w, toks, t.Indent)
	default:
		err = lang.FormatTokens(ctx, w, toks)
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", t.Format))
	}

	return nil
}

// AST prints the parsed commands of a script.
type AST struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width; 0 writes compact output." short:"i"`

	Script []string `arg:"" default:"-" help:"Script file(s), or '-' for stdin." name:"script"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sc, err := readScript(ctx, a.Script)
	if err != nil {
		return err
	}

	prog, err := lang.ParseString(sc.text)
	if err != nil {
		return annotate(err, slog.String("command", "ast"))
	}

	w := streamsFrom(ctx).stdout

	switch a.Format {
	case formatJSON:
		err = prog.FormatJSON(ctx, w, a.Indent)
	case formatYAML:
		err = prog.FormatYAML(ctx, w, a.Indent)
	default:
		err = prog.Format(ctx, w, a.Indent)
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", a.Format))
	}

	return nil
}
