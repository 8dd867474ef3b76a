package parser

import (
	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/token"
)

// parseBraceAtom disambiguates a bare `{` between a block and a
// dictionary literal (spec.md §4.2's atom row). `{}` and anything that
// does not immediately look like `ident =` is parsed as a block;
// `do { ... }` (parseDoBlock) always forces block parsing.
func (p *Parser) parseBraceAtom() ast.Expr {
	if p.looksLikeDictionary() {
		return p.parseDictionaryBody()
	}
	return p.parseBlockBody()
}

// looksLikeDictionary peeks past the opening `{` for `ident =`, the
// only shape a dictionary entry can start with.
func (p *Parser) looksLikeDictionary() bool {
	return p.at(p.pos+1).Type == token.IDENT && p.at(p.pos+2).Type == token.ASSIGN
}

func (p *Parser) parseDoBlock() ast.Expr {
	doTok := p.advance() // 'do'
	block := p.parseBlockBody().(*ast.BlockExpr)
	return ast.NewBlockExpr(block.Exprs, doTok.Span.Union(block.Span()))
}

// parseBlockBody parses `{ (expr (';' expr)*)? ';'? }`.
func (p *Parser) parseBlockBody() ast.Expr {
	open := p.advance() // '{'
	var exprs []ast.Expr
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		exprs = append(exprs, p.parseExpression(precLowest))
		if p.curIs(token.SEMI) {
			p.advance()
			continue
		}
		break
	}
	close, ok := p.expectOrRecover(token.RBRACE, token.LBRACE)
	if !ok {
		return ast.NewErrorExpr(open.Span.Union(close.Span))
	}
	return ast.NewBlockExpr(exprs, open.Span.Union(close.Span))
}

// parseDictionaryBody parses `{ ident = expr, ... }` with leading and
// trailing commas allowed. Later duplicate keys are retained in
// source order; the evaluator applies last-write-wins per spec.md §4.5.
func (p *Parser) parseDictionaryBody() ast.Expr {
	open := p.advance() // '{'
	var entries []ast.DictEntry
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		keyTok, _ := p.expect(token.IDENT)
		key := ast.NewIdentifier(keyTok.Raw, keyTok.Span)
		p.expect(token.ASSIGN)
		value := p.parseExpression(precLowest)
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	close, ok := p.expectOrRecover(token.RBRACE, token.LBRACE)
	if !ok {
		return ast.NewErrorExpr(open.Span.Union(close.Span))
	}
	return ast.NewDictionaryExpr(entries, open.Span.Union(close.Span))
}

// parseLet parses `let ident (':' type)? '=' expr`.
func (p *Parser) parseLet() ast.Expr {
	letTok := p.advance() // 'let'
	nameTok, _ := p.expect(token.IDENT)
	name := ast.NewIdentifier(nameTok.Raw, nameTok.Span)

	var typ ast.TypeExpr
	if p.curIs(token.COLON) {
		p.advance()
		typ = p.parseType()
	}

	p.expect(token.ASSIGN)
	init := p.parseExpression(precLowest)
	meta := ast.NewVariableMeta(name, typ, ast.Mutable, letTok.Span.Union(name.Span()))
	return ast.NewLetExpr(meta, init, letTok.Span.Union(init.Span()))
}

func (p *Parser) parseType() ast.TypeExpr {
	nameTok, _ := p.expect(token.IDENT)
	name := ast.NewIdentifier(nameTok.Raw, nameTok.Span)
	if !p.curIs(token.LT) {
		return ast.NewNamedType(name, nameTok.Span)
	}
	// Generic(base, parameters): `name<Param, Param>`. Reserved syntax;
	// the evaluator rejects these until generics are supported
	// (spec.md §4.5 "Generic annotations are reserved").
	p.advance() // '<'
	var params []ast.TypeExpr
	for !p.curIs(token.GT) && !p.curIs(token.EOF) {
		params = append(params, p.parseType())
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	closeTok, _ := p.expect(token.GT)
	return ast.NewGenericType(name, params, name.Span().Union(closeTok.Span))
}

// parseFunc parses a lambda: `func ident? (param | '(' paramList? ')')? (block | '=>' expr)`.
// When an identifier is given, the lambda desugars into
// `Let{meta: Constant ident, init: Func}` per spec.md §4.2.
func (p *Parser) parseFunc() ast.Expr {
	funcTok := p.advance() // 'func'

	var name *ast.Identifier
	if p.curIs(token.IDENT) {
		nameTok := p.advance()
		n := ast.NewIdentifier(nameTok.Raw, nameTok.Span)
		name = &n
	}

	params := p.parseParamList()
	body := p.parseFuncBody()

	fnSpan := funcTok.Span.Union(body.Span())
	fn := ast.NewFunction(params, body, fnSpan)
	fnExpr := ast.NewFuncExpr(fn, fnSpan)

	if name == nil {
		return fnExpr
	}
	meta := ast.NewVariableMeta(*name, nil, ast.Constant, funcTok.Span.Union(name.Span()))
	return ast.NewLetExpr(meta, fnExpr, fnSpan)
}

// parseParamList accepts either a single bare identifier, a
// parenthesized (possibly empty) list, or nothing.
func (p *Parser) parseParamList() []ast.VariableMeta {
	switch {
	case p.curIs(token.LPAREN):
		p.advance()
		var params []ast.VariableMeta
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			params = append(params, p.parseParam())
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN)
		return params
	case p.curIs(token.IDENT):
		return []ast.VariableMeta{p.parseParam()}
	default:
		return nil
	}
}

func (p *Parser) parseParam() ast.VariableMeta {
	nameTok, _ := p.expect(token.IDENT)
	name := ast.NewIdentifier(nameTok.Raw, nameTok.Span)
	var typ ast.TypeExpr
	span := nameTok.Span
	if p.curIs(token.COLON) {
		p.advance()
		typ = p.parseType()
		span = span.Union(typ.Span())
	}
	return ast.NewVariableMeta(name, typ, ast.Mutable, span)
}

// parseFuncBody accepts either a block or a `=> expr` arrow body.
func (p *Parser) parseFuncBody() ast.Expr {
	if p.curIs(token.FATARROW) {
		p.advance()
		return p.parseExpression(precLowest)
	}
	return p.parseBlockBody()
}

// parseIf parses `if cond block ('else' (block | if_expr))?`. A missing
// else yields OrElse = Nil with the span of the if's tail.
func (p *Parser) parseIf() ast.Expr {
	ifTok := p.advance() // 'if'
	cond := p.parseExpression(precLowest)
	then := p.parseBlockBody()

	if !p.curIs(token.ELSE) {
		tail := source.NewSpan(then.Span().Source, then.Span().End, then.Span().End)
		return ast.NewIfExpr(cond, then, ast.NewNilExpr(tail), ifTok.Span.Union(then.Span()))
	}
	p.advance() // 'else'

	var orElse ast.Expr
	if p.curIs(token.IF) {
		orElse = p.parseIf()
	} else {
		orElse = p.parseBlockBody()
	}
	return ast.NewIfExpr(cond, then, orElse, ifTok.Span.Union(orElse.Span()))
}

// parseWhile parses `while cond block`. `until cond block` is the dual
// of `unless` at the loop level and desugars into `while (not cond) block`.
func (p *Parser) parseWhile() ast.Expr {
	kwTok := p.advance() // 'while' or 'until'
	cond := p.parseExpression(precLowest)
	if kwTok.Type == token.UNTIL {
		cond = ast.NewUnaryOpExpr(ast.OpNot, cond, cond.Span())
	}
	then := p.parseBlockBody()
	return ast.NewWhileExpr(cond, then, kwTok.Span.Union(then.Span()))
}

// parseUnless parses `unless cond block`, desugaring to
// `while (not cond) block` per spec.md §4.2.
func (p *Parser) parseUnless() ast.Expr {
	kwTok := p.advance() // 'unless'
	cond := p.parseExpression(precLowest)
	negated := ast.NewUnaryOpExpr(ast.OpNot, cond, cond.Span())
	then := p.parseBlockBody()
	return ast.NewWhileExpr(negated, then, kwTok.Span.Union(then.Span()))
}

// parseUnary parses the prefix tier: `- expr` and `not expr`.
func (p *Parser) parseUnary() ast.Expr {
	opTok := p.advance()
	operand := p.parseExpression(precUnary)
	op := ast.OpNeg
	if opTok.Type == token.NOT {
		op = ast.OpNot
	}
	return ast.NewUnaryOpExpr(op, operand, opTok.Span.Union(operand.Span()))
}
