package lang

import (
	"strconv"
	"strings"
)

// Kind classifies a [Token].
type Kind int

// Token kinds.
const (
	KindEOF Kind = iota

	KindInput
	KindOutput
	KindTransform
	KindPrint

	KindString
	KindIdent
	KindField
	KindNumber

	KindPlus
	KindAssign
	KindSemicolon
	KindLBrace
	KindRBrace
	KindDot
	KindLParen
	KindRParen

	KindComment
	KindUnknown
)

var kindName = [...]string{
	KindEOF:       "EOF",
	KindInput:     "input",
	KindOutput:    "output",
	KindTransform: "transform",
	KindPrint:     "print",
	KindString:    "string",
	KindIdent:     "identifier",
	KindField:     "field",
	KindNumber:    "number",
	KindPlus:      "'+'",
	KindAssign:    "'='",
	KindSemicolon: "';'",
	KindLBrace:    "'{'",
	KindRBrace:    "'}'",
	KindDot:       "'.'",
	KindLParen:    "'('",
	KindRParen:    "')'",
	KindComment:   "comment",
	KindUnknown:   "unknown",
}

// String returns the name of k. Punctuation kinds are rendered as the quoted
// character they match.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Keyword reports whether k is one of the command keywords.
func (k Kind) Keyword() bool {
	return k >= KindInput && k <= KindPrint
}

var keywords = map[string]Kind{
	"input":     KindInput,
	"output":    KindOutput,
	"transform": KindTransform,
	"print":     KindPrint,
}

// Token is a single lexical element of a script.
//
// Text holds the payload for kinds that carry one: string contents (without
// quotes or escape processing), identifier and field names (without '@'),
// comment text, number digits, and the offending character of an unknown
// token. Number additionally holds the parsed value of a number token.
type Token struct {
	Kind   Kind
	Text   string
	Number uint64
}

// String describes t the way it appears in diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindString:
		return "string " + strconv.Quote(t.Text)
	case KindIdent:
		return "identifier " + strconv.Quote(t.Text)
	case KindField:
		return "field @" + t.Text
	case KindNumber:
		return "number " + strconv.FormatUint(t.Number, 10)
	case KindComment:
		return "comment"
	case KindUnknown:
		return "unknown character " + strconv.QuoteRune(firstRune(t.Text))
	case KindEOF:
		return "end of input"
	default:
		return t.Kind.String()
	}
}

// Source returns t rendered as script text.
func (t Token) Source() string {
	switch t.Kind {
	case KindString:
		return `"` + t.Text + `"`
	case KindField:
		return "@" + t.Text
	case KindIdent, KindNumber, KindUnknown:
		return t.Text
	case KindComment:
		if strings.Contains(t.Text, "\n") {
			return "/* " + t.Text + " */"
		}

		return "// " + t.Text
	case KindEOF:
		return ""
	default:
		return strings.Trim(t.Kind.String(), "'")
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}
