package lang

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits script text into tokens.
//
// Lexing never fails. Characters outside the language become [KindUnknown]
// tokens, and unterminated strings and block comments extend to the end of
// input.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns every token of src, excluding the terminal EOF.
func Tokenize(src string) []Token {
	var toks []Token
	for tok := range NewLexer(src).All() {
		toks = append(toks, tok)
	}

	return toks
}

// All returns an iterator over the remaining tokens, stopping before EOF.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := l.Next()
			if tok.Kind == KindEOF || !yield(tok) {
				return
			}
		}
	}
}

// Next scans and returns the next token. Once the input is exhausted it
// returns an EOF token on every call.
func (l *Lexer) Next() Token {
	l.skipSpace()

	if l.eof() {
		return Token{Kind: KindEOF}
	}

	r := l.peek()

	switch {
	case r == '/':
		return l.scanSlash()
	case r == '"':
		return l.scanString()
	case r == '@':
		l.advance()

		return Token{Kind: KindField, Text: l.scanRun()}
	case isWordStart(r):
		return classify(l.scanRun())
	}

	l.advance()

	switch r {
	case '+':
		return Token{Kind: KindPlus}
	case '=':
		return Token{Kind: KindAssign}
	case ';':
		return Token{Kind: KindSemicolon}
	case '{':
		return Token{Kind: KindLBrace}
	case '}':
		return Token{Kind: KindRBrace}
	case '.':
		return Token{Kind: KindDot}
	case '(':
		return Token{Kind: KindLParen}
	case ')':
		return Token{Kind: KindRParen}
	default:
		return Token{Kind: KindUnknown, Text: string(r)}
	}
}

// classify resolves a word to a keyword, number, or identifier.
func classify(word string) Token {
	if k, ok := keywords[word]; ok {
		return Token{Kind: k}
	}

	if n, err := strconv.ParseUint(word, 10, 64); err == nil {
		return Token{Kind: KindNumber, Text: word, Number: n}
	}

	return Token{Kind: KindIdent, Text: word}
}

func (l *Lexer) scanSlash() Token {
	l.advance() // '/'

	switch l.peek() {
	case '/':
		l.advance()

		start := l.pos
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

		return Token{Kind: KindComment, Text: strings.TrimSpace(l.src[start:l.pos])}

	case '*':
		l.advance()

		start := l.pos
		for !l.eof() {
			if strings.HasPrefix(l.src[l.pos:], "*/") {
				text := l.src[start:l.pos]
				l.pos += 2

				return Token{Kind: KindComment, Text: strings.TrimSpace(text)}
			}

			l.advance()
		}

		return Token{Kind: KindComment, Text: strings.TrimSpace(l.src[start:])}

	default:
		return Token{Kind: KindUnknown, Text: "/"}
	}
}

func (l *Lexer) scanString() Token {
	l.advance() // opening quote

	start := l.pos
	if end := strings.IndexByte(l.src[start:], '"'); end >= 0 {
		l.pos = start + end + 1

		return Token{Kind: KindString, Text: l.src[start : start+end]}
	}

	l.pos = len(l.src)

	return Token{Kind: KindString, Text: l.src[start:]}
}

// scanRun consumes a maximal run of letters, digits, and underscores.
func (l *Lexer) scanRun() string {
	start := l.pos
	for !l.eof() && isWordContinue(l.peek()) {
		l.advance()
	}

	return l.src[start:l.pos]
}

func (l *Lexer) skipSpace() {
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

	return r
}

func (l *Lexer) advance() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isWordContinue(r rune) bool {
	return isWordStart(r) || r == '_'
}
