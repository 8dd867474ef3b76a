/*
File    : meteor/internal/analyzer/scope.go

scope is the analyzer's own lexical symbol table (spec.md §4.3): a
stack of identifier -> defining span maps, entirely separate from
environment.Environment, since the analyzer never holds a runtime
Value — only the span where a name came into being, for diagnostics.
*/
package analyzer

import "github.com/akashmaji946/meteor/internal/source"

type scope struct {
	vars   map[string]source.Span
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]source.Span), parent: parent}
}

func (s *scope) define(name string, at source.Span) {
	s.vars[name] = at
}

func (s *scope) resolve(name string) (source.Span, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if span, ok := sc.vars[name]; ok {
			return span, true
		}
	}
	return source.Span{}, false
}
