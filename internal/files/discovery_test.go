package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tzzbcli/internal/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("title\n"), 0644))
}

func TestResolveInputsFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.TXT")
	writeFile(t, a)
	writeFile(t, b)

	inputs, err := ResolveInputs([]string{a, b}, "HTSC")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, a, inputs[0].Path)
	assert.Equal(t, "HTSC", inputs[0].Variant)
	assert.Equal(t, "b.TXT", inputs[1].Name)
}

func TestResolveInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024-02.txt"))
	writeFile(t, filepath.Join(dir, "2024-01.txt"))
	writeFile(t, filepath.Join(dir, "notes.md"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	inputs, err := ResolveInputs([]string{dir}, "HTSC-FLEX")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	// Sorted by name so chronologically named exports stay in order.
	assert.Equal(t, "2024-01.txt", inputs[0].Name)
	assert.Equal(t, "2024-02.txt", inputs[1].Name)
	assert.Equal(t, "HTSC-FLEX", inputs[0].Variant)
}

func TestResolveInputsEmpty(t *testing.T) {
	_, err := ResolveInputs(nil, "HTSC")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestResolveInputsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	writeFile(t, path)

	_, err := ResolveInputs([]string{path}, "HTSC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export file")
}

func TestResolveInputsMissingFile(t *testing.T) {
	_, err := ResolveInputs([]string{filepath.Join(t.TempDir(), "missing.txt")}, "HTSC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access input")
}

func TestResolveInputsEmptyDirectory(t *testing.T) {
	_, err := ResolveInputs([]string{t.TempDir()}, "HTSC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no export files")
}
