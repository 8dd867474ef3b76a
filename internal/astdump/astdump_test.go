package astdump

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/meteor/internal/parser"
	"github.com/akashmaji946/meteor/internal/source"
)

func TestDump_IsDeterministicAcrossRuns(t *testing.T) {
	src := `func main() { let x = 1 + 2; x }`
	reg := source.NewRegistry()
	id := reg.Intern("test", src)
	prog, diags := parser.Parse(id, src)
	assert.Empty(t, diags)

	first, err := Dump(prog)
	assert.NoError(t, err)
	second, err := Dump(prog)
	assert.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDump_ProducesValidJSON(t *testing.T) {
	src := `let a = [1, 2, 3]; a[0]`
	reg := source.NewRegistry()
	id := reg.Intern("test", src)
	prog, diags := parser.Parse(id, src)
	assert.Empty(t, diags)

	out, err := Dump(prog)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Program", decoded["kind"])
}

func TestDump_CapturesLiteralValues(t *testing.T) {
	src := `let flag = true; let name = "hi"; let n = 3.5`
	reg := source.NewRegistry()
	id := reg.Intern("test", src)
	prog, diags := parser.Parse(id, src)
	assert.Empty(t, diags)

	out, err := Dump(prog)
	assert.NoError(t, err)
	assert.Contains(t, string(out), `"value": true`)
	assert.Contains(t, string(out), `"value": "hi"`)
	assert.Contains(t, string(out), `"value": 3.5`)
}
