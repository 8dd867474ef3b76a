package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/parser"
	"github.com/akashmaji946/meteor/internal/source"
)

func mustParse(t *testing.T, src string) []diag.Diagnostic {
	reg := source.NewRegistry()
	id := reg.Intern("test", src)
	prog, parseDiags := parser.Parse(id, src)
	assert.NotNil(t, prog)
	assert.Empty(t, parseDiags)
	return Analyze(prog)
}

func findKind(diags []diag.Diagnostic, k diag.Kind) *diag.Diagnostic {
	for i := range diags {
		if diags[i].Kind == k {
			return &diags[i]
		}
	}
	return nil
}

func TestAnalyze_UnknownVariable(t *testing.T) {
	diags := mustParse(t, `let x = y;`)
	d := findKind(diags, diag.KindUnknownVariable)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityError, d.Severity)
}

func TestAnalyze_KnownVariableNoError(t *testing.T) {
	diags := mustParse(t, `let x = 1; let y = x;`)
	assert.Nil(t, findKind(diags, diag.KindUnknownVariable))
}

func TestAnalyze_InvalidTopLevel(t *testing.T) {
	diags := mustParse(t, `1 + 2;`)
	d := findKind(diags, diag.KindInvalidTopLevel)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestAnalyze_TopLevelLetAndFuncAreValid(t *testing.T) {
	diags := mustParse(t, `let x = 1; func main() { x };`)
	assert.Nil(t, findKind(diags, diag.KindInvalidTopLevel))
}

func TestAnalyze_InfiniteLoop(t *testing.T) {
	diags := mustParse(t, `let f = func() { while true { 1 } };`)
	d := findKind(diags, diag.KindInfiniteLoop)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestAnalyze_ConditionIsConstant_False(t *testing.T) {
	diags := mustParse(t, `let f = func() { if false { 1 } };`)
	d := findKind(diags, diag.KindConditionIsConstant)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityHint, d.Severity)
	assert.Contains(t, d.Message, "false")
}

func TestAnalyze_NegativeArrayIndex(t *testing.T) {
	diags := mustParse(t, `let f = func() { let a = [1, 2]; a[-1] };`)
	d := findKind(diags, diag.KindNegativeArrayIndex)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestAnalyze_FractionalArrayIndex(t *testing.T) {
	diags := mustParse(t, `let f = func() { let a = [1, 2]; a[1.5] };`)
	d := findKind(diags, diag.KindFractionalArrayIndex)
	assert.NotNil(t, d)
}

func TestAnalyze_IgnoredOperation(t *testing.T) {
	diags := mustParse(t, `let f = func() { let a = 1; a + 1; a };`)
	d := findKind(diags, diag.KindIgnoredOperation)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestAnalyze_CallNotFlaggedAsIgnored(t *testing.T) {
	diags := mustParse(t, `let f = func() { print("hi"); 1 };`)
	assert.Nil(t, findKind(diags, diag.KindIgnoredOperation))
}

func TestAnalyze_AssignmentNotFlaggedAsIgnored(t *testing.T) {
	diags := mustParse(t, `let f = func() { let n = 0; n = n + 1; n };`)
	assert.Nil(t, findKind(diags, diag.KindIgnoredOperation))
}

func TestAnalyze_EmptyBlock(t *testing.T) {
	diags := mustParse(t, `let f = func() { do {} };`)
	d := findKind(diags, diag.KindEmptyBlock)
	assert.NotNil(t, d)
}

func TestAnalyze_DuplicateArgumentName(t *testing.T) {
	diags := mustParse(t, `let f = func(x, x) { x };`)
	d := findKind(diags, diag.KindDuplicateArgumentName)
	assert.NotNil(t, d)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestAnalyze_InvalidInlineLet(t *testing.T) {
	diags := mustParse(t, `let f = func() { 1 + (let x = 2) };`)
	d := findKind(diags, diag.KindInvalidInlineExpr)
	assert.NotNil(t, d)
}

func TestAnalyze_BlockScopeIsolation(t *testing.T) {
	diags := mustParse(t, `let f = func() { do { let inner = 1 }; inner };`)
	d := findKind(diags, diag.KindUnknownVariable)
	assert.NotNil(t, d)
}

func TestAnalyze_PrintIsBuiltin(t *testing.T) {
	diags := mustParse(t, `let f = func() { print("hello") };`)
	assert.Nil(t, findKind(diags, diag.KindUnknownVariable))
}
