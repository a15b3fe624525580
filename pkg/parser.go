package lilt

// Parser consumes a Tokenizer and builds a Program by recursive descent, one
// function per grammar rule. The first error aborts the whole parse.
type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

func (p *Parser) GetFilename() string {
	return p.filename
}

func (p *Parser) Run() (*Program, error) {
	go p.tokenizer.Do()

	prog := &Program{Filename: p.filename}
	for {
		switch tok := p.peek(); tok.Typ {
		case TokenEOF:
			return prog, nil
		case TokenError:
			return nil, p.lexFailure(tok)
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if !tok.isValid() {
		// Keep Error and EOF buffered since no more valid tokens are expected
		p.buf = &tok
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.next()
	if tok.Typ == TokenError {
		return tok, p.lexFailure(tok)
	}

	if tok.Typ != typ {
		return tok, &ParseError{Kind: ExpectedButFound, Expected: what, Tok: tok}
	}

	return tok, nil
}

// lexFailure surfaces the tokenizer's structured error for an error token.
func (p *Parser) lexFailure(tok Token) error {
	if err := p.tokenizer.Err(); err != nil {
		return err
	}

	return &ParseError{Kind: UnexpectedToken, Tok: tok}
}

func (p *Parser) statement() (Stmt, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenPrint:
		return p.printStmt()
	case TokenLet:
		return p.letStmt()
	case TokenIdentifier:
		return p.assignStmt()
	case TokenIf:
		return p.ifChain()
	case TokenWhile:
		return p.whileStmt()
	case TokenError:
		return nil, p.lexFailure(tok)
	default:
		return nil, &ParseError{Kind: UnexpectedToken, Tok: tok}
	}
}

func (p *Parser) printStmt() (Stmt, error) {
	p.next() // print keyword

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &PrintStmt{Value: value}, nil
}

func (p *Parser) letStmt() (Stmt, error) {
	p.next() // let keyword

	name, err := p.expect(TokenIdentifier, "identifier")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAssign, "'='"); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &LetStmt{Name: name.Value, Value: value}, nil
}

func (p *Parser) assignStmt() (Stmt, error) {
	name := p.next()

	if _, err := p.expect(TokenAssign, "'='"); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &AssignStmt{Name: name.Value, Value: value}, nil
}

// ifChain parses "if condition then ... end" with any number of elseif links
// and an optional trailing else. The leading if or elseif keyword is consumed
// here; exactly one end closes the entire chain, at whichever link reaches it.
func (p *Parser) ifChain() (*IfStmt, error) {
	p.next() // if or elseif keyword

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenThen, "'then'"); err != nil {
		return nil, err
	}

	stmt := &IfStmt{Cond: cond}
	for {
		switch tok := p.peek(); tok.Typ {
		case TokenEnd:
			p.next()
			return stmt, nil
		case TokenElseif:
			next, err := p.ifChain()
			if err != nil {
				return nil, err
			}

			stmt.Next = next
			return stmt, nil
		case TokenElse:
			next, err := p.elseBranch()
			if err != nil {
				return nil, err
			}

			stmt.Next = next
			return stmt, nil
		case TokenEOF:
			return nil, &ParseError{Kind: UnterminatedBlock, Expected: "'end'", Tok: tok}
		case TokenError:
			return nil, p.lexFailure(tok)
		default:
			s, err := p.statement()
			if err != nil {
				return nil, err
			}

			stmt.Body = append(stmt.Body, s)
		}
	}
}

// elseBranch parses the final plain else body. else must be the last link,
// so another elseif or else here is an error.
func (p *Parser) elseBranch() (*IfStmt, error) {
	p.next() // else keyword

	stmt := &IfStmt{}
	for {
		switch tok := p.peek(); tok.Typ {
		case TokenEnd:
			p.next()
			return stmt, nil
		case TokenElseif, TokenElse:
			return nil, &ParseError{Kind: UnexpectedToken, Tok: tok}
		case TokenEOF:
			return nil, &ParseError{Kind: UnterminatedBlock, Expected: "'end'", Tok: tok}
		case TokenError:
			return nil, p.lexFailure(tok)
		default:
			s, err := p.statement()
			if err != nil {
				return nil, err
			}

			stmt.Body = append(stmt.Body, s)
		}
	}
}

func (p *Parser) whileStmt() (Stmt, error) {
	p.next() // while keyword

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenThen, "'then'"); err != nil {
		return nil, err
	}

	stmt := &WhileStmt{Cond: cond}
	for {
		switch tok := p.peek(); tok.Typ {
		case TokenEnd:
			p.next()
			return stmt, nil
		case TokenEOF:
			return nil, &ParseError{Kind: UnterminatedBlock, Expected: "'end'", Tok: tok}
		case TokenError:
			return nil, p.lexFailure(tok)
		default:
			s, err := p.statement()
			if err != nil {
				return nil, err
			}

			stmt.Body = append(stmt.Body, s)
		}
	}
}

// condition parses expression (cmp expression)+ greedily: comparisons are
// consumed for as long as comparison operators follow.
func (p *Parser) condition() (*Condition, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); !tok.isComparison() {
		if tok.Typ == TokenError {
			return nil, p.lexFailure(tok)
		}

		return nil, &ParseError{Kind: ExpectedButFound, Expected: "comparison operator", Tok: tok}
	}

	cond := &Condition{Left: left}
	for p.peek().isComparison() {
		op := p.next()

		right, err := p.expression()
		if err != nil {
			return nil, err
		}

		cond.Chain = append(cond.Chain, Comparison{Op: CompareOp(op.Value), Right: right})
	}

	return cond, nil
}

func (p *Parser) expression() (Expr, error) {
	if p.check(TokenString) {
		tok := p.next()
		return &LiteralExpr{Typ: LiteralString, Value: tok.Value}, nil
	}

	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Typ != TokenPlus && tok.Typ != TokenMinus {
			return lhs, nil
		}

		p.next()

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		// Chained operands nest to the left (10 - 3 - 2 is (10 - 3) - 2)
		lhs = &BinaryExpr{
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) term() (Expr, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Typ != TokenAsterisk && tok.Typ != TokenSlash {
			return lhs, nil
		}

		p.next()

		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) unary() (Expr, error) {
	if tok := p.peek(); tok.Typ == TokenPlus || tok.Typ == TokenMinus {
		p.next()

		operand, err := p.primary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operation: UnaryOp(tok.Value),
			Operand:   operand,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber:
		p.next()
		return &LiteralExpr{Typ: LiteralNumber, Value: tok.Value}, nil
	case TokenIdentifier:
		p.next()
		return &Identifier{Name: tok.Value}, nil
	case TokenError:
		return nil, p.lexFailure(tok)
	default:
		return nil, &ParseError{Kind: ExpectedButFound, Expected: "number or identifier", Tok: tok}
	}
}
