package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRepl() *Repl {
	return New("banner", "v0", "author", "---", "MIT", "> ", false)
}

func TestRepl_FeedEvaluatesExpression(t *testing.T) {
	r := newTestRepl()
	var out bytes.Buffer
	r.Feed(&out, "1 + 1")
	assert.Contains(t, out.String(), "2")
}

func TestRepl_FeedPersistsBindingsAcrossLines(t *testing.T) {
	r := newTestRepl()
	var out bytes.Buffer
	r.Feed(&out, "let x = 40")
	out.Reset()
	r.Feed(&out, "x + 2")
	assert.Contains(t, out.String(), "42")
}

func TestRepl_FeedReportsParseErrors(t *testing.T) {
	r := newTestRepl()
	var out bytes.Buffer
	r.Feed(&out, "let = ")
	assert.True(t, strings.Contains(out.String(), "error") || strings.Contains(out.String(), "Error"))
}

func TestRepl_FeedReportsUnknownVariable(t *testing.T) {
	r := newTestRepl()
	var out bytes.Buffer
	r.Feed(&out, "totally_unknown")
	assert.Contains(t, out.String(), "UnknownVariable")
}

func TestRepl_PrintBannerInfoWritesWithoutColor(t *testing.T) {
	r := newTestRepl()
	var out bytes.Buffer
	r.PrintBannerInfo(&out)
	assert.Contains(t, out.String(), "Meteor")
	assert.Contains(t, out.String(), "banner")
}
