package expr

// parser evaluates as it parses. There is no AST: expressions are tiny
// and evaluated at most a handful of times per render.
//
// mute tracks whether the parser is inside an untaken branch (the
// short side of && / || / ?? or the unchosen arm of ?:). Muted code is
// still parsed, so grammar errors surface regardless of state, but the
// resolver is not queried and runtime errors like division by zero are
// suppressed.
type parser struct {
	lex      lexer
	cur      token
	resolver Resolver
	mute     int
	err      error
}

// Eval evaluates an expression against the resolver. A nil resolver
// treats every identifier as unresolved.
func Eval(expression string, r Resolver) (Value, error) {
	p := parser{lex: lexer{input: expression}, resolver: r}
	p.advance()
	v := p.parseTernary()
	if p.err == nil && p.cur.kind != tokenEOF {
		p.fail(p.cur.pos, "unexpected trailing input")
	}
	if p.err != nil {
		return Null(), p.err
	}
	return v, nil
}

// EvalToString evaluates an expression and renders the result as
// display text.
func EvalToString(expression string, r Resolver) (string, error) {
	v, err := Eval(expression, r)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

// CollectIdentifiers lexes an expression without evaluating it and
// returns every identifier in source order, duplicates included.
// Malformed tokens are still rejected.
func CollectIdentifiers(expression string) ([]string, error) {
	l := lexer{input: expression}
	var ids []string
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenIdentifier {
			ids = append(ids, tok.text)
		}
		if tok.kind == tokenEOF {
			return ids, nil
		}
	}
}

func (p *parser) fail(pos int, msg string) {
	if p.err == nil {
		p.err = &Error{Code: CodeInvalidSyntax, Pos: pos, Message: msg}
	}
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.next()
	if err != nil {
		p.err = err
		return
	}
	p.cur = tok
}

func (p *parser) expect(kind tokenKind, what string) {
	if p.err != nil {
		return
	}
	if p.cur.kind != kind {
		p.fail(p.cur.pos, "expected "+what)
		return
	}
	p.advance()
}

// muted parses a subexpression without evaluating it.
func (p *parser) muted(parse func() Value) {
	p.mute++
	parse()
	p.mute--
}

func (p *parser) parsePrimary() Value {
	if p.err != nil {
		return Null()
	}
	switch p.cur.kind {
	case tokenNumber:
		v := Number(p.cur.num)
		p.advance()
		return v
	case tokenTrue:
		p.advance()
		return Bool(true)
	case tokenFalse:
		p.advance()
		return Bool(false)
	case tokenNull:
		p.advance()
		return Null()
	case tokenString:
		v := String(p.cur.text)
		p.advance()
		return v
	case tokenIdentifier:
		name := p.cur.text
		p.advance()
		if p.mute > 0 {
			return Null()
		}
		if p.resolver != nil {
			if v, ok := p.resolver.Resolve(name); ok {
				return v
			}
		}
		// Unresolved identifiers degrade to empty text so a template
		// with a stale binding still renders.
		return String("")
	case tokenLParen:
		p.advance()
		v := p.parseTernary()
		p.expect(tokenRParen, "')'")
		return v
	default:
		p.fail(p.cur.pos, "expected a value")
		return Null()
	}
}

func (p *parser) parseUnary() Value {
	switch p.cur.kind {
	case tokenBang:
		p.advance()
		operand := p.parseUnary()
		return Bool(!operand.AsBool())
	case tokenMinus:
		p.advance()
		operand := p.parseUnary()
		return Number(-operand.AsNumber())
	}
	return p.parsePrimary()
}

func (p *parser) parseFactor() Value {
	v := p.parseUnary()
	for p.err == nil && (p.cur.kind == tokenStar || p.cur.kind == tokenSlash) {
		op := p.cur
		p.advance()
		rhs := p.parseUnary()
		left, right := v.AsNumber(), rhs.AsNumber()
		if op.kind == tokenStar {
			v = Number(left * right)
			continue
		}
		if right == 0 {
			if p.mute == 0 && p.err == nil {
				p.err = &Error{Code: CodeDivideByZero, Pos: op.pos, Message: "division by zero"}
			}
			v = Null()
			continue
		}
		v = Number(left / right)
	}
	return v
}

func (p *parser) parseTerm() Value {
	v := p.parseFactor()
	for p.err == nil && (p.cur.kind == tokenPlus || p.cur.kind == tokenMinus) {
		op := p.cur.kind
		p.advance()
		rhs := p.parseFactor()
		if op == tokenPlus && (v.Type() == TypeString || rhs.Type() == TypeString) {
			v = String(v.AsString() + rhs.AsString())
			continue
		}
		if op == tokenPlus {
			v = Number(v.AsNumber() + rhs.AsNumber())
		} else {
			v = Number(v.AsNumber() - rhs.AsNumber())
		}
	}
	return v
}

func (p *parser) parseComparison() Value {
	v := p.parseTerm()
	for p.err == nil && (p.cur.kind == tokenGreater || p.cur.kind == tokenGreaterEqual ||
		p.cur.kind == tokenLess || p.cur.kind == tokenLessEqual) {
		op := p.cur.kind
		p.advance()
		rhs := p.parseTerm()
		left, right := v.AsNumber(), rhs.AsNumber()
		switch op {
		case tokenGreater:
			v = Bool(left > right)
		case tokenGreaterEqual:
			v = Bool(left >= right)
		case tokenLess:
			v = Bool(left < right)
		case tokenLessEqual:
			v = Bool(left <= right)
		}
	}
	return v
}

func (p *parser) parseEquality() Value {
	v := p.parseComparison()
	for p.err == nil && (p.cur.kind == tokenEqualEqual || p.cur.kind == tokenBangEqual) {
		op := p.cur.kind
		p.advance()
		rhs := p.parseComparison()
		eq := v.Equal(rhs)
		if op == tokenBangEqual {
			eq = !eq
		}
		v = Bool(eq)
	}
	return v
}

func (p *parser) parseAnd() Value {
	v := p.parseEquality()
	for p.err == nil && p.cur.kind == tokenAnd {
		p.advance()
		if v.AsBool() {
			rhs := p.parseEquality()
			v = Bool(rhs.AsBool())
		} else {
			p.muted(p.parseEquality)
			v = Bool(false)
		}
	}
	return v
}

func (p *parser) parseOr() Value {
	v := p.parseAnd()
	for p.err == nil && p.cur.kind == tokenOr {
		p.advance()
		if v.AsBool() {
			p.muted(p.parseAnd)
			v = Bool(true)
		} else {
			rhs := p.parseAnd()
			v = Bool(rhs.AsBool())
		}
	}
	return v
}

// coalescePresent reports whether v short-circuits ??. Both null and
// the empty string count as absent: unresolved identifiers evaluate to
// "" and must still fall through to the fallback.
func coalescePresent(v Value) bool {
	if v.IsNull() {
		return false
	}
	return v.Type() != TypeString || v.AsString() != ""
}

func (p *parser) parseCoalesce() Value {
	v := p.parseOr()
	for p.err == nil && p.cur.kind == tokenCoalesce {
		p.advance()
		if coalescePresent(v) {
			p.muted(p.parseOr)
			continue
		}
		v = p.parseOr()
	}
	return v
}

func (p *parser) parseTernary() Value {
	cond := p.parseCoalesce()
	if p.err != nil || p.cur.kind != tokenQuestion {
		return cond
	}
	p.advance()
	// The false branch is a full ternary expression, which makes
	// chained conditionals right-associative.
	if cond.AsBool() {
		v := p.parseTernary()
		p.expect(tokenColon, "':'")
		p.muted(p.parseTernary)
		return v
	}
	p.muted(p.parseTernary)
	p.expect(tokenColon, "':'")
	return p.parseTernary()
}
