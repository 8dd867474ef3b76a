package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempScript(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.meteor")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand_SuccessfulProgramExitsZero(t *testing.T) {
	path := writeTempScript(t, `func main() { 1 + 1 }`)
	assert.Equal(t, 0, runCommand([]string{path}))
}

func TestRunCommand_RuntimeErrorExitsNonZero(t *testing.T) {
	path := writeTempScript(t, `func main() { undefined_name }`)
	assert.NotEqual(t, 0, runCommand([]string{path}))
}

func TestRunCommand_MissingPathExitsNonZero(t *testing.T) {
	assert.NotEqual(t, 0, runCommand(nil))
}

func TestRunCommand_MissingFileExitsNonZero(t *testing.T) {
	assert.NotEqual(t, 0, runCommand([]string{"/no/such/file.meteor"}))
}

func TestRunCommand_DumpASTDoesNotRequireMain(t *testing.T) {
	path := writeTempScript(t, `let x = 1`)
	assert.Equal(t, 0, runCommand([]string{"--dump-ast", path}))
}

func TestRunCommand_FileFlagAcceptsPath(t *testing.T) {
	path := writeTempScript(t, `func main() { 1 }`)
	assert.Equal(t, 0, runCommand([]string{"--file", path}))
}

func TestDirOf(t *testing.T) {
	assert.Equal(t, "a/b", dirOf("a/b/c.meteor"))
	assert.Equal(t, ".", dirOf("c.meteor"))
}
