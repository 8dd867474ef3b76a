package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/meteor/internal/eval"
)

func TestLoad_NoFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	assert.NoError(t, err)
	assert.Equal(t, eval.PolicyMainFunction, cfg.Policy())
	assert.True(t, cfg.UseColor())
}

func TestLoad_ParsesEntrypointAndColor(t *testing.T) {
	dir := t.TempDir()
	content := "entrypoint: last-expression\ncolor: false\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	assert.NoError(t, err)
	assert.Equal(t, eval.PolicyLastExpression, cfg.Policy())
	assert.False(t, cfg.UseColor())
}

func TestLoad_FindsFileInAncestorDirectory(t *testing.T) {
	root := t.TempDir()
	content := "entrypoint: last-expression\n"
	assert.NoError(t, os.WriteFile(filepath.Join(root, fileName), []byte(content), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	assert.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	assert.NoError(t, err)
	assert.Equal(t, eval.PolicyLastExpression, cfg.Policy())
}

func TestLoad_UnrecognizedEntrypointFallsBackToMain(t *testing.T) {
	dir := t.TempDir()
	content := "entrypoint: something-else\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	assert.NoError(t, err)
	assert.Equal(t, eval.PolicyMainFunction, cfg.Policy())
}
