package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMultiDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "stream.yaml", `
apiVersion: v1
kind: Secret
metadata:
  name: certs
---
# comment-only document
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: extra
`)

	objects, err := Load(path)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "Secret", objects[0].Kind())
	assert.Equal(t, "ConfigMap", objects[1].Kind())
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "b.yaml", "kind: ConfigMap\nmetadata:\n  name: b\n")
	writeTestFile(t, dir, "a.yml", "kind: Secret\nmetadata:\n  name: a\n")
	writeTestFile(t, dir, "nested/c.yaml", "kind: Bundle\nmetadata:\n  name: c\n")
	writeTestFile(t, dir, "notes.txt", "ignored")
	writeTestFile(t, dir, ".hidden/d.yaml", "kind: ConfigMap\nmetadata:\n  name: d\n")

	objects, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	// lexical walk order within the directory
	assert.Equal(t, "a", objects[0].Name())
	assert.Equal(t, "b", objects[1].Name())
	assert.Equal(t, "c", objects[2].Name())
}

func TestLoadPreservesInputOrderAcrossPaths(t *testing.T) {
	dir := t.TempDir()
	second := writeTestFile(t, dir, "z-first.yaml", "kind: ConfigMap\nmetadata:\n  name: one\n")
	first := writeTestFile(t, dir, "a-second.yaml", "kind: ConfigMap\nmetadata:\n  name: two\n")

	objects, err := Load(second, first)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "one", objects[0].Name())
	assert.Equal(t, "two", objects[1].Name())
}

func TestLoadDuplicatePathsReadOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "once.yaml", "kind: ConfigMap\nmetadata:\n  name: once\n")

	objects, err := Load(path, path, dir)
	require.NoError(t, err)
	assert.Len(t, objects, 1)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "broken.yaml", "kind: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidManifest, apperrors.GetCode(err))
}

func TestLoadNonMappingDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "list.yaml", "- one\n- two\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidManifest, apperrors.GetCode(err))
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}
