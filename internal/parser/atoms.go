package parser

import (
	"strconv"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/token"
)

func (p *Parser) parseNumber() ast.Expr {
	tok := p.advance()
	v, err := strconv.ParseFloat(tok.Raw, 64)
	if err != nil {
		p.errorf(diag.KindUnexpectedToken, tok.Span, "invalid number literal %q", tok.Raw)
		return ast.NewErrorExpr(tok.Span)
	}
	return ast.NewNumberExpr(v, tok.Span)
}

func (p *Parser) parseString() ast.Expr {
	tok := p.advance()
	return ast.NewStringExpr(tok.Value, tok.Span)
}

func (p *Parser) parseBool() ast.Expr {
	tok := p.advance()
	return ast.NewBoolExpr(tok.Type == token.TRUE, tok.Span)
}

func (p *Parser) parseNil() ast.Expr {
	tok := p.advance()
	return ast.NewNilExpr(tok.Span)
}

func (p *Parser) parseIdent() ast.Expr {
	tok := p.advance()
	return ast.NewIdentExpr(ast.NewIdentifier(tok.Raw, tok.Span))
}

// parseGrouped parses `(expr)` and returns the inner expression with its
// own span; the parentheses are not included in it.
func (p *Parser) parseGrouped() ast.Expr {
	open := p.advance() // '('
	inner := p.parseExpression(precLowest)
	close, ok := p.expectOrRecover(token.RPAREN, token.LPAREN)
	if !ok {
		return ast.NewErrorExpr(open.Span.Union(close.Span))
	}
	return inner
}

// parseArray parses `[elem, elem, ...]` with leading and trailing
// commas allowed.
func (p *Parser) parseArray() ast.Expr {
	open := p.advance() // '['
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		elems = append(elems, p.parseExpression(precLowest))
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	close, ok := p.expectOrRecover(token.RBRACKET, token.LBRACKET)
	if !ok {
		return ast.NewErrorExpr(open.Span.Union(close.Span))
	}
	return ast.NewArrayExpr(elems, open.Span.Union(close.Span))
}
