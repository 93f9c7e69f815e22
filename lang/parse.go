package lang

// ParseString tokenizes and parses a script.
func ParseString(src string) (Program, error) {
	return Parse(Tokenize(src))
}

// Parse builds the command list of a script from its tokens.
//
// Parsing stops at the first structural error; there is no recovery. The
// token slice may or may not end with an EOF token.
func Parse(tokens []Token) (Program, error) {
	p := &parser{tokens: tokens}

	return p.parseProgram()
}

// parser is a recursive descent parser over a token slice.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseProgram() (Program, error) {
	prog := Program{}

	for {
		tok := p.peek()

		var (
			cmd Command
			err error
		)

		switch tok.Kind {
		case KindEOF:
			return prog, nil
		case KindComment:
			p.advance()

			continue
		case KindInput:
			p.advance()

			var path string
			if path, err = p.parsePath("input"); err == nil {
				cmd = Input{Path: path}
			}
		case KindOutput:
			p.advance()

			var path string
			if path, err = p.parsePath("output"); err == nil {
				cmd = Output{Path: path}
			}
		case KindPrint:
			p.advance()
			cmd, err = p.parsePrint()
		case KindTransform:
			p.advance()
			cmd, err = p.parseTransform()
		default:
			return nil, errUnexpected(tok, "command position", commandWords...)
		}

		if err != nil {
			return nil, err
		}

		prog = append(prog, cmd)
	}
}

// parsePath parses: STRING ';'.
func (p *parser) parsePath(keyword string) (string, error) {
	tok := p.peek()
	if tok.Kind != KindString {
		return "", errExpected("string after '"+keyword+"'", tok)
	}

	p.advance()

	if err := p.expect(KindSemicolon); err != nil {
		return "", err
	}

	return tok.Text, nil
}

// parsePrint parses: ';' | 'line' NUMBER ';'.
func (p *parser) parsePrint() (Command, error) {
	tok := p.peek()

	switch {
	case tok.Kind == KindSemicolon:
		p.advance()

		return Print{}, nil

	case tok.Kind == KindIdent && tok.Text == "line":
		p.advance()

		num := p.peek()
		if num.Kind != KindNumber {
			return nil, errExpected("number after 'print line'", num)
		}

		p.advance()

		if err := p.expect(KindSemicolon); err != nil {
			return nil, err
		}

		return PrintLine{Line: num.Number}, nil

	default:
		return nil, errExpected("';' or 'line' after 'print'", tok, printWords...)
	}
}

// parseTransform parses: '{' (IDENT '=' Expr ';')* '}' [';'].
func (p *parser) parseTransform() (Command, error) {
	if err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	cmd := Transform{Assignments: []Assignment{}}

	for {
		tok := p.peek()

		switch tok.Kind {
		case KindComment:
			p.advance()

			continue

		case KindRBrace:
			p.advance()

			// A trailing ';' after the block is optional.
			if p.peek().Kind == KindSemicolon {
				p.advance()
			}

			return cmd, nil

		case KindIdent:
			p.advance()

			if err := p.expect(KindAssign); err != nil {
				return nil, err
			}

			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if err := p.expect(KindSemicolon); err != nil {
				return nil, err
			}

			cmd.Assignments = append(cmd.Assignments, Assignment{
				Field: tok.Text,
				Value: value,
			})

		case KindEOF:
			return nil, errExpected("'}'", tok)

		default:
			return nil, errUnexpected(tok, "transform block")
		}
	}
}

// parseExpr parses: Term ('+' Term)*. A single term is returned as is.
func (p *parser) parseExpr() (Expr, error) {
	var parts []Expr

	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		parts = append(parts, term)

		p.skipComments()

		if p.peek().Kind != KindPlus {
			break
		}

		p.advance()
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return Concat{Parts: parts}, nil
}

// parseTerm parses a field (with optional modifiers), a string literal, or
// one of the builtin calls raw() and serial().
func (p *parser) parseTerm() (Expr, error) {
	p.skipComments()

	tok := p.peek()

	switch tok.Kind {
	case KindField:
		p.advance()

		return p.parseField(tok.Text), nil

	case KindString:
		p.advance()

		return Literal{Text: tok.Text}, nil

	case KindIdent:
		var e Expr

		switch tok.Text {
		case "raw":
			e = RawRecord{}
		case "serial":
			e = Serial{}
		default:
			return nil, errUnexpected(tok, "expression", builtinWords...)
		}

		p.advance()

		if err := p.expect(KindLParen); err != nil {
			return nil, err
		}

		if err := p.expect(KindRParen); err != nil {
			return nil, err
		}

		return e, nil

	default:
		return nil, errExpected("expression", tok)
	}
}

// parseField collects the dotted path following a field token and any
// modifier calls after it.
//
// A '.' followed by an identifier extends the path unless the identifier is
// itself followed by '(', which starts a modifier call instead.
func (p *parser) parseField(first string) Expr {
	path := []string{first}

	for p.peek().Kind == KindDot && p.peekAt(1).Kind == KindIdent {
		if p.peekAt(2).Kind == KindLParen {
			break
		}

		path = append(path, p.peekAt(1).Text)
		p.advance()
		p.advance()
	}

	mods := p.parseModifiers()
	if len(mods) == 0 {
		return FieldPath{Path: path}
	}

	return FieldWithModifiers{Path: path, Modifiers: mods}
}

// parseModifiers collects calls of the form '.' IDENT '(' STRING ')'.
//
// Collection ends without error at the first call that is not well formed or
// does not name a known modifier. Tokens consumed by that call stay consumed.
func (p *parser) parseModifiers() []Modifier {
	var mods []Modifier

	for p.peek().Kind == KindDot &&
		p.peekAt(1).Kind == KindIdent &&
		p.peekAt(2).Kind == KindLParen {
		name := p.peekAt(1).Text

		p.advance() // '.'
		p.advance() // IDENT
		p.advance() // '('

		arg := p.peek()
		if arg.Kind != KindString {
			break
		}

		p.advance()

		if p.peek().Kind != KindRParen {
			break
		}

		p.advance()

		kind, ok := modifierKinds[name]
		if !ok {
			break
		}

		mods = append(mods, Modifier{Kind: kind, Text: arg.Text})
	}

	return mods
}

func (p *parser) skipComments() {
	for p.peek().Kind == KindComment {
		p.advance()
	}
}

func (p *parser) expect(kind Kind) error {
	tok := p.peek()
	if tok.Kind != kind {
		return errExpected(kind.String(), tok)
	}

	p.advance()

	return nil
}

func (p *parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token n positions ahead, or EOF past the end.
func (p *parser) peekAt(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}

	return Token{Kind: KindEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}
