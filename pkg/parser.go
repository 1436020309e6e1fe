package hindic

const maxParams = 8

// Parser is a recursive-descent parser with one token of lookahead
// beyond the current token (curTok/peekTok), panic-mode error recovery,
// and a strictly-typed AST as its output.
type Parser struct {
	scanner *Scanner

	curTok  Token
	peekTok Token

	hadError  bool
	panicMode bool
	errors    []CompileError
}

// NewParser buffers the first two tokens from scanner so curTok and
// peekTok are both primed before parsing begins.
func NewParser(scanner *Scanner) *Parser {
	p := &Parser{scanner: scanner}
	p.advance()
	p.advance()
	return p
}

// Errors returns every diagnostic collected during parsing.
func (p *Parser) Errors() []CompileError {
	return p.errors
}

// HadError reports whether any syntactic (or forwarded lexical) error
// was reported.
func (p *Parser) HadError() bool {
	return p.hadError
}

// Parse consumes the whole token stream and returns the resulting
// Program. Call HadError/Errors afterward to check for failures.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	for p.curTok.Type != TokenEOF {
		prog.Declarations = append(prog.Declarations, p.declaration())
		if p.panicMode {
			p.synchronize()
		}
	}
	return prog
}

func (p *Parser) advance() {
	p.curTok = p.peekTok
	if p.scanner == nil {
		return
	}
	tok := p.scanner.Next()
	for tok.Type == TokenError {
		p.reportLexError(tok)
		tok = p.scanner.Next()
	}
	p.peekTok = tok
}

// reportLexError forwards a scanner ERROR token into the diagnostic
// stream as a LexError, distinct from a SyntaxError the parser itself
// raises, though both drive the same panic-mode recovery.
func (p *Parser) reportLexError(tok Token) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors = append(p.errors, newLexError(tok.Pos, tok.StringValue))
}

func (p *Parser) check(tt TokenType) bool {
	return p.curTok.Type == tt
}

func (p *Parser) checkPeek(tt TokenType) bool {
	return p.peekTok.Type == tt
}

// match consumes curTok and reports success if it has type tt.
func (p *Parser) match(tt TokenType) (Token, bool) {
	if p.curTok.Type != tt {
		return Token{}, false
	}
	tok := p.curTok
	p.advance()
	return tok, true
}

// expect consumes curTok if it has type tt, else reports a syntax error
// at the current position and returns false without consuming.
func (p *Parser) expect(tt TokenType, format string, args ...interface{}) (Token, bool) {
	if tok, ok := p.match(tt); ok {
		return tok, true
	}
	p.errorAtCurrent(format, args...)
	return Token{}, false
}

func (p *Parser) errorAtCurrent(format string, args ...interface{}) {
	p.errorAt(p.curTok.Pos, format, args...)
}

func (p *Parser) errorAt(pos Position, format string, args ...interface{}) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors = append(p.errors, newSyntaxError(pos, format, args...))
}

// synchronize leaves panic mode and discards tokens until a statement
// boundary: the previous token was ';', or the current token starts a
// new declaration.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.curTok.Type != TokenEOF {
		if p.curTok.Type == TokenSemicolon {
			p.advance()
			return
		}

		switch p.curTok.Type {
		case TokenInt, TokenFloat, TokenChar, TokenVoid,
			TokenIf, TokenWhile, TokenFor, TokenReturn:
			return
		}

		p.advance()
	}
}

// declaration parses a top-level or block-level item: either a typed
// variable/function declaration, or a fallthrough to statement.
func (p *Parser) declaration() Stmt {
	if isTypeKeyword(p.curTok.Type) {
		typeTok := p.curTok
		p.advance()

		isFunc := p.check(TokenIdentifier) && p.checkPeek(TokenLParen)
		nameMsg := "Expect variable name."
		if isFunc {
			nameMsg = "Expect function name."
		}

		name, ok := p.expect(TokenIdentifier, nameMsg)
		if !ok {
			return &BadStmt{Position: typeTok.Pos, Message: nameMsg}
		}

		if isFunc {
			return p.functionDecl(typeTok, name)
		}
		return p.varDeclTail(typeTok, name)
	}

	return p.statement()
}

func (p *Parser) declType(tok Token) Type {
	t, _ := typeFromKeyword(tok.Type)
	return t
}

func (p *Parser) functionDecl(typeTok, name Token) Stmt {
	p.advance() // consume '('

	var params []Param
	if !p.check(TokenRParen) {
		for {
			if !isTypeKeyword(p.curTok.Type) || p.curTok.Type == TokenVoid {
				p.errorAtCurrent("Expect parameter type.")
				break
			}
			paramType := p.curTok
			p.advance()

			paramName, ok := p.expect(TokenIdentifier, "Expect parameter name.")
			if !ok {
				break
			}

			if len(params) >= maxParams {
				p.errorAt(paramName.Pos, "Too many function parameters.")
			} else {
				params = append(params, Param{Type: p.declType(paramType), Name: paramName})
			}

			if _, ok := p.match(TokenComma); !ok {
				break
			}
		}
	}

	if _, ok := p.expect(TokenRParen, "Expect ')' after parameters."); !ok {
		return &BadStmt{Position: name.Pos, Message: "malformed parameter list"}
	}

	body := p.blockWithOpenMessage("Expect '{' before function body.")

	return &FunctionDecl{
		Name:       name,
		ReturnType: p.declType(typeTok),
		Params:     params,
		Body:       body,
	}
}

func (p *Parser) varDeclTail(typeTok, name Token) Stmt {
	var init Expr
	if _, ok := p.match(TokenAssign); ok {
		init = p.expression()
	}

	p.consumeSemicolon("Expect ';' after variable declaration.")

	return &VarDecl{
		Name:        name,
		Type:        p.declType(typeTok),
		Initializer: init,
	}
}

// consumeSemicolon reports a missing terminator through the normal
// error path (which enters panic mode) but consumes nothing else and
// does not abort; parsing continues from the current token.
func (p *Parser) consumeSemicolon(message string) {
	if _, ok := p.match(TokenSemicolon); !ok {
		p.errorAtCurrent(message)
	}
}

func (p *Parser) statement() Stmt {
	switch p.curTok.Type {
	case TokenIf:
		return p.ifStatement()
	case TokenWhile:
		return p.whileStatement()
	case TokenFor:
		return p.forStatement()
	case TokenReturn:
		return p.returnStatement()
	case TokenLBrace:
		return p.block()
	case TokenDo, TokenBreak, TokenContinue:
		tok := p.curTok
		p.advance()
		p.errorAt(tok.Pos, "'%s' is not yet supported", tok.Type)
		return &BadStmt{Position: tok.Pos, Message: "not yet supported"}
	default:
		expr := p.expression()
		p.consumeSemicolon("Expect ';' after expression.")
		return &ExprStmt{Expression: expr}
	}
}

func (p *Parser) ifStatement() Stmt {
	pos := p.curTok.Pos
	p.advance() // 'if'

	p.expect(TokenLParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(TokenRParen, "Expect ')' after if condition.")

	then := p.statement()

	var elseBranch Stmt
	if _, ok := p.match(TokenElse); ok {
		elseBranch = p.statement()
	}

	return &If{Position: pos, Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() Stmt {
	pos := p.curTok.Pos
	p.advance() // 'while'

	p.expect(TokenLParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(TokenRParen, "Expect ')' after while condition.")

	body := p.statement()

	return &While{Position: pos, Cond: cond, Body: body}
}

func (p *Parser) forStatement() Stmt {
	pos := p.curTok.Pos
	p.advance() // 'for'

	p.expect(TokenLParen, "Expect '(' after 'for'.")

	var init Stmt
	if _, ok := p.match(TokenSemicolon); !ok {
		if isTypeKeyword(p.curTok.Type) {
			typeTok := p.curTok
			p.advance()
			name, ok := p.expect(TokenIdentifier, "Expect variable name.")
			if ok {
				init = p.varDeclTail(typeTok, name)
			}
		} else {
			expr := p.expression()
			p.consumeSemicolon("Expect ';' after expression.")
			init = &ExprStmt{Expression: expr}
		}
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		cond = p.expression()
	}
	p.expect(TokenSemicolon, "Expect ';' after loop condition.")

	var incr Expr
	if !p.check(TokenRParen) {
		incr = p.expression()
	}
	p.expect(TokenRParen, "Expect ')' after for clauses.")

	body := p.statement()

	return &For{Position: pos, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) returnStatement() Stmt {
	pos := p.curTok.Pos
	p.advance() // 'return'

	var value Expr
	if !p.check(TokenSemicolon) {
		value = p.expression()
	}
	p.consumeSemicolon("Expect ';' after return value.")

	return &Return{Position: pos, Value: value}
}

func (p *Parser) block() *Block {
	return p.blockWithOpenMessage("Expect '{'.")
}

// blockWithOpenMessage parses a brace-delimited block, reporting
// openMsg if the opening brace is missing — callers that already know
// a context-specific reason to expect '{' (a function body) pass their
// own message instead of the generic one.
func (p *Parser) blockWithOpenMessage(openMsg string) *Block {
	pos := p.curTok.Pos
	if _, ok := p.expect(TokenLBrace, openMsg); !ok {
		return &Block{Position: pos}
	}

	b := &Block{Position: pos}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		b.Stmts = append(b.Stmts, p.declaration())
		if p.panicMode {
			p.synchronize()
		}
	}

	p.expect(TokenRBrace, "Expect '}' after block.")
	return b
}

// --- expressions, lowest precedence first ---

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	expr := p.logicalOr()

	if _, ok := p.match(TokenAssign); ok {
		id, isVar := expr.(*Identifier)
		if !isVar {
			p.errorAt(expr.Pos(), "Invalid assignment target.")
			return &BadExpr{Position: expr.Pos(), Message: "Invalid assignment target."}
		}

		value := p.assignment() // right-associative
		return &Assignment{Target: id.Name, Value: value}
	}

	return expr
}

func (p *Parser) logicalOr() Expr {
	expr := p.logicalAnd()
	for p.check(TokenOr) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.logicalAnd()}
	}
	return expr
}

func (p *Parser) logicalAnd() Expr {
	expr := p.equality()
	for p.check(TokenAnd) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.equality()}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.check(TokenEquals) || p.check(TokenNotEquals) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.comparison()}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.check(TokenLess) || p.check(TokenGreater) || p.check(TokenLessEq) || p.check(TokenGreaterEq) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.term()}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.factor()}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.check(TokenStar) || p.check(TokenSlash) || p.check(TokenPercent) {
		op := p.curTok
		p.advance()
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: p.unary()}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.check(TokenMinus) || p.check(TokenNot) {
		op := p.curTok
		p.advance()
		return &UnaryExpr{Position: op.Pos, Operator: op.Type, Operand: p.unary()}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	if p.check(TokenLParen) {
		id, ok := expr.(*Identifier)
		if !ok {
			pos := expr.Pos()
			p.errorAt(pos, "Can only call functions.")
			p.advance() // consume '(' so we don't loop forever
			for !p.check(TokenRParen) && !p.check(TokenEOF) {
				p.advance()
			}
			p.match(TokenRParen)
			return &BadExpr{Position: pos, Message: "Can only call functions."}
		}
		return p.finishCall(id.Name)
	}

	return expr
}

func (p *Parser) finishCall(callee Token) Expr {
	p.advance() // consume '('

	var args []Expr
	if !p.check(TokenRParen) {
		args = append(args, p.expression())
		for {
			if _, ok := p.match(TokenComma); !ok {
				break
			}
			args = append(args, p.expression())
		}
	}

	p.expect(TokenRParen, "Expect ')' after arguments.")

	return &Call{Callee: callee, Args: args}
}

func (p *Parser) primary() Expr {
	switch p.curTok.Type {
	case TokenLParen:
		p.advance()
		expr := p.expression()
		p.expect(TokenRParen, "Expect ')' after expression.")
		return expr
	case TokenIdentifier:
		tok := p.curTok
		p.advance()
		return &Identifier{Name: tok}
	case TokenNumber, TokenString:
		tok := p.curTok
		p.advance()
		return &LiteralExpr{Value: tok}
	default:
		tok := p.curTok
		p.advance()
		p.errorAt(tok.Pos, "Expect expression.")
		return &BadExpr{Position: tok.Pos, Message: "Expect expression."}
	}
}
