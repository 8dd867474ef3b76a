/*
File    : meteor/internal/parser/parser.go

Package parser implements a Pratt (top-down operator precedence) parser
for Meteor, turning a token stream into a *ast.Program. The grammar is
expression-oriented per spec.md §4.2: `if`, `while`, blocks, `let`, and
lambdas are all expressions that yield a value.

Unlike the reference interpreter's two-token (current/peek) lookahead,
this parser buffers the lexer's entire token slice up front (the lexer
is already total per spec.md §8.1, so this costs nothing extra) and
walks it with an index. That gives the parser unbounded lookahead,
needed to disambiguate a bare `{` between a block and a dictionary
literal (spec.md §4.2's atom row) without backtracking.
*/
package parser

import (
	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/lexer"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/token"
)

// Precedence tiers, lowest to highest, mirroring spec.md §4.2's table.
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precComparison
	precXor
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var infixPrecedence = map[token.Type]int{
	token.ASSIGN:   precAssign,
	token.OR:       precOr,
	token.NOR:      precOr,
	token.AND:      precAnd,
	token.EQ:       precComparison,
	token.NOT_EQ:   precComparison,
	token.GT:       precComparison,
	token.GE:       precComparison,
	token.LT:       precComparison,
	token.LE:       precComparison,
	token.XOR:      precXor,
	token.PLUS:     precAdditive,
	token.MINUS:    precAdditive,
	token.STAR:     precMultiplicative,
	token.SLASH:    precMultiplicative,
	token.MOD:      precMultiplicative,
	token.LPAREN:   precPostfix,
	token.LBRACKET: precPostfix,
	token.DOT:      precPostfix,
}

type (
	prefixFn func() ast.Expr
	infixFn  func(ast.Expr) ast.Expr
)

// Parser holds all state for one parse of a single source unit.
type Parser struct {
	toks  []token.Token
	pos   int
	srcID source.SourceId

	diags []diag.Diagnostic

	prefixFns map[token.Type]prefixFn
	infixFns  map[token.Type]infixFn
}

// New returns a parser for the given interned source.
func New(srcID source.SourceId, text string) *Parser {
	p := &Parser{
		toks:      lexer.New(srcID, text).Tokens(),
		srcID:     srcID,
		prefixFns: make(map[token.Type]prefixFn),
		infixFns:  make(map[token.Type]infixFn),
	}
	p.registerGrammar()
	return p
}

func (p *Parser) registerGrammar() {
	p.prefixFns[token.NUMBER] = p.parseNumber
	p.prefixFns[token.STRING] = p.parseString
	p.prefixFns[token.TRUE] = p.parseBool
	p.prefixFns[token.FALSE] = p.parseBool
	p.prefixFns[token.NIL] = p.parseNil
	p.prefixFns[token.IDENT] = p.parseIdent
	p.prefixFns[token.LPAREN] = p.parseGrouped
	p.prefixFns[token.LBRACKET] = p.parseArray
	p.prefixFns[token.LBRACE] = p.parseBraceAtom
	p.prefixFns[token.DO] = p.parseDoBlock
	p.prefixFns[token.LET] = p.parseLet
	p.prefixFns[token.FUNC] = p.parseFunc
	p.prefixFns[token.IF] = p.parseIf
	p.prefixFns[token.WHILE] = p.parseWhile
	p.prefixFns[token.UNTIL] = p.parseWhile
	p.prefixFns[token.UNLESS] = p.parseUnless
	p.prefixFns[token.MINUS] = p.parseUnary
	p.prefixFns[token.NOT] = p.parseUnary

	for tt := range infixPrecedence {
		switch tt {
		case token.LPAREN:
			p.infixFns[tt] = p.parseCall
		case token.LBRACKET:
			p.infixFns[tt] = p.parseIndex
		case token.DOT:
			p.infixFns[tt] = p.parseProperty
		default:
			p.infixFns[tt] = p.parseBinary
		}
	}
}

// --- token cursor -----------------------------------------------------

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token { return p.at(p.pos + 1) }

func (p *Parser) at(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF is always the final token
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(tt token.Type) bool  { return p.cur().Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peek().Type == tt }

// expect consumes the current token if it matches tt, recording a
// diagnostic and returning false otherwise.
func (p *Parser) expect(tt token.Type) (token.Token, bool) {
	if p.curIs(tt) {
		return p.advance(), true
	}
	p.errorf(diag.KindUnexpectedToken, p.cur().Span, "expected %s, found %s %q", tt, p.cur().Type, p.cur().Raw)
	return p.cur(), false
}

func (p *Parser) errorf(kind diag.Kind, span source.Span, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Error(kind, span, format, args...))
}

func (p *Parser) span(start int, end source.Span) source.Span {
	return p.at(start).Span.Union(end)
}

// Diagnostics returns every parse error collected so far.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags }

// --- top level ----------------------------------------------------------

// Parse implements spec.md §4.2's top level:
// `Program := Directive* Expression (';' Expression)* ';'?`.
// It returns the parsed Program plus any diagnostics. Per the failure
// model in spec.md §4.2, a nil Program is returned only when no
// top-level expression could be parsed at all (not even via recovery).
func Parse(srcID source.SourceId, text string) (*ast.Program, []diag.Diagnostic) {
	p := New(srcID, text)
	return p.ParseProgram()
}

func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic) {
	start := p.pos
	var directives []*ast.Directive
	for p.curIs(token.DIRECTIVE) {
		directives = append(directives, p.parseDirective())
	}

	var exprs []ast.Expr
	for !p.curIs(token.EOF) {
		e := p.parseExpression(precLowest)
		exprs = append(exprs, e)
		if p.curIs(token.SEMI) {
			p.advance()
			continue
		}
		if p.curIs(token.EOF) {
			break
		}
		// No separator and not at EOF: surface a diagnostic but stop
		// trying to parse further top-level expressions, per the
		// "surfaces a diagnostic and aborts the containing rule"
		// non-recovery fallback in spec.md §4.2.
		p.errorf(diag.KindUnexpectedToken, p.cur().Span, "expected ';' or end of input, found %s %q", p.cur().Type, p.cur().Raw)
		break
	}

	if len(exprs) == 0 && len(directives) == 0 {
		return nil, p.diags
	}

	endSpan := p.cur().Span
	if len(exprs) > 0 {
		endSpan = exprs[len(exprs)-1].Span()
	} else if len(directives) > 0 {
		endSpan = directives[len(directives)-1].Span()
	}
	prog := ast.NewProgram(directives, exprs, p.at(start).Span.Union(endSpan))
	return prog, p.diags
}

func (p *Parser) parseDirective() *ast.Directive {
	tok := p.advance() // DIRECTIVE
	name := ast.NewIdentifier(tok.Raw, tok.Span)
	span := tok.Span
	var args []ast.Expr
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			args = append(args, p.parseExpression(precLowest))
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		closeTok, _ := p.expect(token.RPAREN)
		span = span.Union(closeTok.Span)
	}
	return ast.NewDirective(name, args, span)
}

// parseExpression is the Pratt climbing loop.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.errorf(diag.KindUnexpectedToken, p.cur().Span, "unexpected token %s %q in expression position", p.cur().Type, p.cur().Raw)
		return p.errorExprAtCur()
	}
	left := prefix()

	for !p.curIs(token.EOF) {
		infixPrec, ok := infixPrecedence[p.cur().Type]
		if !ok || infixPrec <= precedence {
			break
		}
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) errorExprAtCur() ast.Expr {
	tok := p.advance()
	return ast.NewErrorExpr(tok.Span)
}
