package parser

import (
	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/token"
)

// parseCall parses the `(...)` postfix call chain step, with leading
// and trailing commas allowed in the argument list.
func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		args = append(args, p.parseExpression(precLowest))
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	close, ok := p.expectOrRecover(token.RPAREN, token.LPAREN)
	if !ok {
		return ast.NewErrorExpr(fn.Span().Union(close.Span))
	}
	return ast.NewCallExpr(fn, args, fn.Span().Union(close.Span))
}

// parseIndex parses the `[expr]` postfix chain step.
func (p *Parser) parseIndex(lhs ast.Expr) ast.Expr {
	p.advance() // '['
	idx := p.parseExpression(precLowest)
	close, ok := p.expectOrRecover(token.RBRACKET, token.LBRACKET)
	if !ok {
		return ast.NewErrorExpr(lhs.Span().Union(close.Span))
	}
	return ast.NewArrayIndexExpr(lhs, idx, lhs.Span().Union(close.Span))
}

// parseProperty parses the `.ident` postfix chain step.
func (p *Parser) parseProperty(lhs ast.Expr) ast.Expr {
	p.advance() // '.'
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return ast.NewErrorExpr(lhs.Span().Union(nameTok.Span))
	}
	name := ast.NewIdentifier(nameTok.Raw, nameTok.Span)
	return ast.NewPropertyAccessExpr(lhs, name, lhs.Span().Union(nameTok.Span))
}

// parseBinary parses one infix binary-operator step at the operator's
// own precedence tier. All tiers in spec.md §4.2 are left-associative,
// so the right-hand side is parsed at the operator's own precedence
// (not one below it): equal-precedence operators to the right stop the
// recursive parse and are picked up by the enclosing climb instead.
func (p *Parser) parseBinary(lhs ast.Expr) ast.Expr {
	opTok := p.advance()
	prec := infixPrecedence[opTok.Type]
	rhs := p.parseExpression(prec)
	op := ast.BinaryOpFromToken(opTok.Type)
	return ast.NewBinaryOpExpr(lhs, op, rhs, lhs.Span().Union(rhs.Span()))
}
