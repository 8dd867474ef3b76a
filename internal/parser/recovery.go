package parser

import (
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/token"
)

// expectOrRecover consumes closeTok if it is the current token. Otherwise
// it records a diagnostic and performs the parser's only nonlocal
// recovery (spec.md §4.2): it consumes tokens up to the matching close
// delimiter — tracking nested occurrences of openTok so an inner
// balanced group isn't mistaken for the outer one's close — and returns
// that close token (or the EOF token, if the group was never closed)
// with ok=false so the caller can substitute an Expression::Error
// spanning the whole delimited region.
func (p *Parser) expectOrRecover(closeTok, openTok token.Type) (token.Token, bool) {
	if p.curIs(closeTok) {
		return p.advance(), true
	}

	p.errorf(diag.KindRecoveredError, p.cur().Span, "expected %s, found %s %q; recovering to matching delimiter", closeTok, p.cur().Type, p.cur().Raw)

	depth := 0
	for !p.curIs(token.EOF) {
		switch p.cur().Type {
		case openTok:
			depth++
		case closeTok:
			if depth == 0 {
				return p.advance(), false
			}
			depth--
		}
		p.advance()
	}
	return p.cur(), false // EOF: never closed
}
