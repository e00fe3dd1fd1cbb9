// Package parser turns a lexer.Token stream into an ast.Root using
// precedence-climbing (Pratt) expression parsing and a recursive-descent
// statement grammar. It produces no visitor/Accept machinery: the
// resulting tree is a closed tagged union walked by the evaluator's type
// switch.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/lexer"
)

// precedence gives each binary operator its binding strength. Higher
// binds tighter. All operators are left-associative, including POW and
// CONCAT, per the language's table (this departs from Lua's own
// right-associative ^ and ..).
var precedence = map[lexer.Kind]int{
	lexer.OR:     1,
	lexer.AND:    2,
	lexer.EQUAL:  3,
	lexer.NEQUAL: 3,
	lexer.LT:     4,
	lexer.GT:     4,
	lexer.LE:     4,
	lexer.GE:     4,
	lexer.PLUS:   5,
	lexer.MINUS:  5,
	lexer.MUL:    6,
	lexer.DIV:    6,
	lexer.MOD:    6,
	lexer.CONCAT: 7,
	lexer.POW:    8,
}

var binaryOperators = map[lexer.Kind]ast.BinaryOperator{
	lexer.OR:     ast.BinOr,
	lexer.AND:    ast.BinAnd,
	lexer.EQUAL:  ast.BinEqual,
	lexer.NEQUAL: ast.BinNEqual,
	lexer.LT:     ast.BinLT,
	lexer.GT:     ast.BinGT,
	lexer.LE:     ast.BinLE,
	lexer.GE:     ast.BinGE,
	lexer.PLUS:   ast.BinPlus,
	lexer.MINUS:  ast.BinMinus,
	lexer.MUL:    ast.BinMul,
	lexer.DIV:    ast.BinDiv,
	lexer.MOD:    ast.BinMod,
	lexer.CONCAT: ast.BinConcat,
	lexer.POW:    ast.BinPow,
}

// Parser consumes a fully tokenized source and builds an ast.Root.
type Parser struct {
	tokens []lexer.Token
	pos    int
	lines  []string
}

// Parse tokenizes source and parses it into a Root. A lexer error is
// returned as-is (it already satisfies error with line/source context);
// a grammar error is returned as a *SyntaxError.
func Parse(source string) (*ast.Root, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, lines: strings.Split(source, "\n")}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.EOF {
		return nil, p.errorf("Expected EOF, found %s", p.cur().Kind)
	}
	return ast.NewRoot(body), nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF, Line: p.lastLine()}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF, Line: p.lastLine()}
	}
	return p.tokens[idx]
}

func (p *Parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *Parser) sourceLine(line int) string {
	if line-1 >= 0 && line-1 < len(p.lines) {
		return strings.TrimSpace(p.lines[line-1])
	}
	return ""
}

func (p *Parser) errorf(format string, args ...interface{}) *SyntaxError {
	tok := p.cur()
	return &SyntaxError{
		Message:    fmt.Sprintf(format, args...),
		TokenKind:  tok.Kind,
		Line:       tok.Line,
		SourceLine: p.sourceLine(tok.Line),
	}
}

// expect consumes the current token if it matches kind, else fails.
func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if p.cur().Kind != kind {
		return lexer.Token{}, p.errorf("Expected %s, found %s", kind, p.cur().Kind)
	}
	return p.advance(), nil
}

// isBlockTerminator reports whether k ends a statement block: EOF or one
// of terminators, which parseBlock leaves unconsumed.
func isBlockTerminator(k lexer.Kind, terminators []lexer.Kind) bool {
	if k == lexer.EOF {
		return true
	}
	for _, t := range terminators {
		if k == t {
			return true
		}
	}
	return false
}

// parseBlock parses statements until it sees EOF or one of terminators,
// which it leaves unconsumed for the caller to inspect.
func (p *Parser) parseBlock(terminators ...lexer.Kind) ([]ast.Node, error) {
	var stmts []ast.Node
	for !isBlockTerminator(p.cur().Kind, terminators) {
		if p.cur().Kind == lexer.SEMICOLON {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.cur().Kind {
	case lexer.LOCAL:
		return p.parseLocal()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.BREAK:
		line := p.advance().Line
		return ast.NewBreakStatement(line), nil
	default:
		return p.parseExpression(1)
	}
}

func (p *Parser) parseLocal() (ast.Node, error) {
	line := p.advance().Line // LOCAL
	if p.cur().Kind == lexer.FUNCTION {
		return p.parseFunctionDeclaration()
	}
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	var extraNames []string
	for p.cur().Kind == lexer.COMMA {
		p.advance()
		tok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		extraNames = append(extraNames, tok.Literal)
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if len(extraNames) > 0 {
		call, ok := value.(*ast.FunctionCall)
		if !ok || (call.Name != "pcall" && call.Name != "xpcall") {
			return nil, &SyntaxError{
				Message:    "MultipleAssignmentUnsupported",
				TokenKind:  p.cur().Kind,
				Line:       line,
				SourceLine: p.sourceLine(line),
			}
		}
	}
	return ast.NewVariableDeclaration(nameTok.Literal, extraNames, value, line), nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Node, error) {
	line := p.advance().Line // FUNCTION
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Kind != lexer.RPAREN {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		tok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Literal)
	}
	p.advance() // RPAREN
	body, err := p.parseBlock(lexer.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(nameTok.Literal, params, body, line), nil
}

// parseAnonymousFunction parses `function(params) body end` used as an
// expression (e.g. the callback argument to pcall). It shares the
// FunctionDeclaration node shape with a named declaration, just with an
// empty Name; the evaluator returns the closure value without binding it
// into the environment.
func (p *Parser) parseAnonymousFunction() (ast.Node, error) {
	line := p.advance().Line // FUNCTION
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Kind != lexer.RPAREN {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		tok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Literal)
	}
	p.advance() // RPAREN
	body, err := p.parseBlock(lexer.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration("", params, body, line), nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	line := p.advance().Line // RETURN
	if isBlockTerminator(p.cur().Kind, []lexer.Kind{lexer.END, lexer.ELSE, lexer.ELSEIF}) || p.cur().Kind == lexer.SEMICOLON {
		return ast.NewReturnStatement(nil, line), nil
	}
	value, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(value, line), nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	line := p.advance().Line // IF
	cond, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock(lexer.ELSEIF, lexer.ELSE, lexer.END)
	if err != nil {
		return nil, err
	}
	var elseIfs []ast.ElseIfBranch
	for p.cur().Kind == lexer.ELSEIF {
		p.advance()
		c, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.THEN); err != nil {
			return nil, err
		}
		b, err := p.parseBlock(lexer.ELSEIF, lexer.ELSE, lexer.END)
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIfBranch{Condition: c, Block: b})
	}
	var elseBlock []ast.Node
	if p.cur().Kind == lexer.ELSE {
		p.advance()
		elseBlock, err = p.parseBlock(lexer.END)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return ast.NewIfStatement(cond, thenBlock, elseIfs, elseBlock, line), nil
}

func (p *Parser) parseFor() (ast.Node, error) {
	line := p.advance().Line // FOR
	first, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	names := []string{first.Literal}
	for p.cur().Kind == lexer.COMMA {
		p.advance()
		tok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)
	}

	switch p.cur().Kind {
	case lexer.ASSIGN:
		if len(names) != 1 {
			return nil, p.errorf("MultipleAssignmentUnsupported")
		}
		p.advance()
		start, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		end, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		var step ast.Node
		if p.cur().Kind == lexer.COMMA {
			p.advance()
			step, err = p.parseExpression(1)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.DO); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(lexer.END)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.END); err != nil {
			return nil, err
		}
		return ast.NewNumericForStatement(names[0], start, end, step, body, line), nil
	case lexer.IN:
		p.advance()
		exprList, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.DO); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(lexer.END)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.END); err != nil {
			return nil, err
		}
		return ast.NewGenericForStatement(names, exprList, body, line), nil
	default:
		return nil, &SyntaxError{
			Message:    "ExpectedEqualsOrIn",
			TokenKind:  p.cur().Kind,
			Line:       p.cur().Line,
			SourceLine: p.sourceLine(p.cur().Line),
		}
	}
}

func (p *Parser) parseWhile() (ast.Node, error) {
	line := p.advance().Line // WHILE
	cond, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(lexer.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(cond, body, line), nil
}

// parseExpression implements precedence climbing: it parses a primary,
// then repeatedly folds in infix operators binding at least minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		kind := p.cur().Kind
		prec, ok := precedence[kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		line := p.advance().Line
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperation(left, binaryOperators[kind], right, line)
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.INTEGER:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}
		return ast.NewLiteral(v, ast.LiteralInteger, tok.Line), nil
	case lexer.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}
		return ast.NewLiteral(v, ast.LiteralFloat, tok.Line), nil
	case lexer.STRING, lexer.LONGSTRING:
		p.advance()
		return ast.NewLiteral(tok.Literal, ast.LiteralString, tok.Line), nil
	case lexer.BOOLEAN:
		p.advance()
		return ast.NewLiteral(strings.EqualFold(tok.Literal, "true"), ast.LiteralBoolean, tok.Line), nil
	case lexer.NIL:
		p.advance()
		return ast.NewLiteral(nil, ast.LiteralNil, tok.Line), nil
	case lexer.MINUS:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOperation(ast.UnaryMinus, operand, tok.Line), nil
	case lexer.NOT:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOperation(ast.UnaryNot, operand, tok.Line), nil
	case lexer.HASH:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOperation(ast.UnaryHash, operand, tok.Line), nil
	case lexer.LCURLY:
		return p.parseTableConstructor()
	case lexer.FUNCTION:
		return p.parseAnonymousFunction()
	case lexer.IDENTIFIER:
		return p.parseIdentifierHeadedForm()
	default:
		return nil, &SyntaxError{
			Message:    "UnsupportedPrimary",
			TokenKind:  tok.Kind,
			Line:       tok.Line,
			SourceLine: p.sourceLine(tok.Line),
		}
	}
}

// parseIdentifierHeadedForm disambiguates the forms that begin with a
// bare identifier: assignment, indexed reference/assignment, function
// call, and method-chain/method-call access, per the language's single
// identifier-lookahead grammar.
func (p *Parser) parseIdentifierHeadedForm() (ast.Node, error) {
	nameTok := p.advance() // IDENTIFIER
	name := nameTok.Literal
	line := nameTok.Line

	switch p.cur().Kind {
	case lexer.ASSIGN:
		p.advance()
		value, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		return ast.NewVariableAssignment(name, value, nil, line), nil

	case lexer.LBRACKET:
		p.advance()
		index, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		if p.cur().Kind == lexer.ASSIGN {
			p.advance()
			value, err := p.parseExpression(1)
			if err != nil {
				return nil, err
			}
			return ast.NewVariableAssignment(name, value, index, line), nil
		}
		return ast.NewVariableReference(name, index, line), nil

	case lexer.LPAREN:
		p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(name, args, line), nil

	case lexer.DOT:
		var parent ast.Node = ast.NewObject(name, line)
		for p.cur().Kind == lexer.DOT {
			p.advance()
			memberTok, err := p.expect(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			if p.cur().Kind == lexer.LPAREN {
				p.advance()
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(lexer.RPAREN); err != nil {
					return nil, err
				}
				parent = ast.NewMethodCall(memberTok.Literal, parent, args, memberTok.Line)
			} else {
				parent = ast.NewMethodChain(memberTok.Literal, parent, memberTok.Line)
			}
		}
		return parent, nil

	default:
		return ast.NewVariableReference(name, nil, line), nil
	}
}

func (p *Parser) parseArgList() ([]ast.Node, error) {
	var args []ast.Node
	for p.cur().Kind != lexer.RPAREN {
		if len(args) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// parseTableConstructor parses `{ ... }`. Any `identifier = expression`
// entry makes the whole table a dictionary; otherwise it is an array.
// A constructor that mixes the two entry forms is a syntax error.
func (p *Parser) parseTableConstructor() (ast.Node, error) {
	line := p.advance().Line // LCURLY
	var entries []ast.TableEntry
	isArray := true
	sawArrayEntry := false
	idx := int64(1)
	for p.cur().Kind != lexer.RCURLY {
		if p.cur().Kind == lexer.IDENTIFIER && p.peekAt(1).Kind == lexer.ASSIGN {
			keyTok := p.advance()
			p.advance() // ASSIGN
			value, err := p.parseExpression(1)
			if err != nil {
				return nil, err
			}
			key := ast.NewLiteral(keyTok.Literal, ast.LiteralString, keyTok.Line)
			entries = append(entries, ast.TableEntry{Key: key, Value: value})
			isArray = false
		} else {
			value, err := p.parseExpression(1)
			if err != nil {
				return nil, err
			}
			key := ast.NewLiteral(idx, ast.LiteralInteger, line)
			entries = append(entries, ast.TableEntry{Key: key, Value: value})
			idx++
			sawArrayEntry = true
		}
		if p.cur().Kind == lexer.COMMA || p.cur().Kind == lexer.SEMICOLON {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RCURLY); err != nil {
		return nil, err
	}
	if !isArray && sawArrayEntry {
		return nil, &SyntaxError{
			Message:    "table constructor mixes array and dictionary entries",
			TokenKind:  lexer.LCURLY,
			Line:       line,
			SourceLine: p.sourceLine(line),
		}
	}
	return ast.NewTable(entries, isArray, line), nil
}
