package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/meteor/internal/parser"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/value"
)

func runMain(t *testing.T, src string) (value.Value, *RuntimeError, string) {
	reg := source.NewRegistry()
	id := reg.Intern("test", src)
	prog, diags := parser.Parse(id, src)
	assert.NotNil(t, prog)
	assert.Empty(t, diags)
	var out bytes.Buffer
	ev := New(&out, PolicyMainFunction)
	v, err := ev.Run(prog)
	return v, err, out.String()
}

func TestEval_ArithmeticThroughMain(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{`func main() { 1 + 1 }`, 2},
		{`func main() { 15 / 3 }`, 5},
		{`func main() { 1 + 2 * 3 }`, 7},
		{`func main() { (1 + 2) * 3 }`, 9},
		{`func main() { 7 % 3 }`, 1},
		{`func main() { -2 * 3 }`, -6},
	}
	for _, tt := range tests {
		v, err, _ := runMain(t, tt.input)
		assert.Nil(t, err, tt.input)
		n, ok := v.(value.Number)
		assert.True(t, ok, tt.input)
		assert.Equal(t, tt.expected, float64(n), tt.input)
	}
}

func TestEval_BoolOps(t *testing.T) {
	v, err, _ := runMain(t, `func main() { true and false }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Bool(false), v)

	v, err, _ = runMain(t, `func main() { true xor false }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Bool(true), v)
}

func TestEval_UnsupportedOperationCrossType(t *testing.T) {
	_, err, _ := runMain(t, `func main() { 1 + true }`)
	assert.NotNil(t, err)
	assert.Equal(t, "UnsupportedOperation", string(err.Diagnostic.Kind))
}

func TestEval_StringAndPrint(t *testing.T) {
	_, err, out := runMain(t, `func main() { print("hello"); print(1) }`)
	assert.Nil(t, err)
	assert.Equal(t, "hello\n1\n", out)
}

func TestEval_LetAndAssignment(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let x = 1; x = x + 1; x }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(2), v)
}

func TestEval_UnknownVariable(t *testing.T) {
	_, err, _ := runMain(t, `func main() { y }`)
	assert.NotNil(t, err)
	assert.Equal(t, "UnknownVariable", string(err.Diagnostic.Kind))
}

func TestEval_IfExpression(t *testing.T) {
	v, err, _ := runMain(t, `func main() { if 1 > 0 { "pos" } else { "neg" } }`)
	assert.Nil(t, err)
	assert.Equal(t, value.String("pos"), v)
}

func TestEval_WhileLoop(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let i = 0; while i < 5 { i = i + 1 }; i }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(5), v)
}

func TestEval_ArrayIndexAndMutation(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let a = [1, 2, 3]; a[1] = 9; a[1] }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(9), v)
}

func TestEval_ArrayOutOfBounds(t *testing.T) {
	_, err, _ := runMain(t, `func main() { let a = [1, 2]; a[5] }`)
	assert.NotNil(t, err)
	assert.Equal(t, "ArrayOutOfBounds", string(err.Diagnostic.Kind))
}

func TestEval_ArraysAreSharedMutable(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let a = [1]; let b = a; b[0] = 42; a[0] }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(42), v)
}

func TestEval_DictionaryPropertyAccess(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let d = { x = 1, y = 2 }; d.y }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(2), v)
}

func TestEval_DictionaryMissingKeyIsNil(t *testing.T) {
	v, err, _ := runMain(t, `func main() { let d = { x = 1 }; d.missing }`)
	assert.Nil(t, err)
	assert.Equal(t, value.Nil{}, v)
}

func TestEval_PropertyAccessOnNonDictionary(t *testing.T) {
	_, err, _ := runMain(t, `func main() { let x = 1; x.y }`)
	assert.NotNil(t, err)
	assert.Equal(t, "InvalidPropertyAccess", string(err.Diagnostic.Kind))
}

func TestEval_ClosureCapturesMutatedEnvironment(t *testing.T) {
	v, err, _ := runMain(t, `
		func main() {
			let counter = 0;
			let incr = func() { counter = counter + 1 };
			incr();
			incr();
			counter
		}
	`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(2), v)
}

func TestEval_ClosurePassedAsValue(t *testing.T) {
	v, err, _ := runMain(t, `
		func main() {
			let apply = func(f, x) { f(x) };
			let double = func(n) { n * 2 };
			apply(double, 21)
		}
	`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(42), v)
}

func TestEval_MissingMainIsInvalidMainFunc(t *testing.T) {
	_, err, _ := runMain(t, `let x = 1;`)
	assert.NotNil(t, err)
	assert.Equal(t, "InvalidMainFunc", string(err.Diagnostic.Kind))
}

func TestEval_LastExpressionPolicy(t *testing.T) {
	reg := source.NewRegistry()
	id := reg.Intern("test", `1; 2; 3`)
	prog, diags := parser.Parse(id, `1; 2; 3`)
	assert.NotNil(t, prog)
	assert.Empty(t, diags)
	var out bytes.Buffer
	ev := New(&out, PolicyLastExpression)
	v, err := ev.Run(prog)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(3), v)
}

func TestEval_TypeMismatchOnAssign(t *testing.T) {
	_, err, _ := runMain(t, `func main() { let x: number = 1; x = "oops" }`)
	assert.NotNil(t, err)
	assert.Equal(t, "MismatchType", string(err.Diagnostic.Kind))
}

func TestEval_DuplicateParameterNameIsFirstWins(t *testing.T) {
	v, err, _ := runMain(t, `
		func main() {
			let f = func(x, x) { x };
			f(1, 2)
		}
	`)
	assert.Nil(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestEval_UnknownTypeAnnotation(t *testing.T) {
	_, err, _ := runMain(t, `func main() { let x: frobnicator = 1; x }`)
	assert.NotNil(t, err)
	assert.Equal(t, "UnknownType", string(err.Diagnostic.Kind))
}
