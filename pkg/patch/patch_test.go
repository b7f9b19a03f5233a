package patch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_EditFile_CreatesNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.go")
	content := "package main\n\nfunc main() {}\n"

	result, err := NewEngine().EditFile(context.Background(), path, "create main", content)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.True(t, result.IsNew)
	assert.Equal(t, path, result.File)

	// Content is written verbatim, every line tagged added.
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))

	require.Len(t, result.Changes, 3)
	for _, c := range result.Changes {
		assert.Equal(t, TagAdded, c.Tag)
	}
	assert.Equal(t, "package main", result.Changes[0].Text)
}

func TestEngine_EditFile_AppliesFragments(t *testing.T) {
	tests := []struct {
		name     string
		original string
		codeEdit string
		want     string
	}{
		{
			name:     "exact_anchor_splice",
			original: "a\nb\nc\nd\ne",
			codeEdit: "b\nX\nd",
			want:     "b\nX\nd\nd\ne",
		},
		{
			name:     "markers_are_never_written",
			original: "alpha\nbeta\ngamma\ndelta\nepsilon\nzeta\neta\ntheta",
			// Anchor on "delta" (index 3) opens window [0,6); two lines are
			// removed from the window start. Imprecise on purpose.
			codeEdit: "// ... existing code ...\ndelta\nPATCHED\n// ... existing code ...",
			want:     "delta\nPATCHED\ngamma\ndelta\nepsilon\nzeta\neta\ntheta",
		},
		{
			name:     "empty_edit_specification",
			original: "a\nb\nc",
			codeEdit: "",
			want:     "a\nb\nc",
		},
		{
			name:     "low_confidence_defaults_to_top",
			original: "alpha\nbeta\ngamma\ndelta\nepsilon",
			codeEdit: "zzzzzzzzzz",
			want:     "zzzzzzzzzz\nbeta\ngamma\ndelta\nepsilon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "target.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.original), 0o644))

			result, err := NewEngine().EditFile(context.Background(), path, "", tt.codeEdit)
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.False(t, result.IsNew)

			onDisk, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(onDisk))
		})
	}
}

func TestEngine_EditFile_SequentialFragmentsDrift(t *testing.T) {
	// Two fragments applied in order against the same working buffer; the
	// second anchors against the already-mutated state.
	dir := t.TempDir()
	path := filepath.Join(dir, "drift.txt")
	original := "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight\nnine\nten"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	codeEdit := "two\nTWO-B\n// ... existing code ...\nnine\nNINE-B"
	result, err := NewEngine().EditFile(context.Background(), path, "", codeEdit)
	require.NoError(t, err)
	assert.True(t, result.Success)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(string(onDisk))
	assert.Contains(t, lines, "TWO-B")
	assert.Contains(t, lines, "NINE-B")
	assert.NotContains(t, string(onDisk), "existing code")
}

func TestEngine_EditFile_ReadFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes ReadFile fail with a non-NotExist
	// error.
	path := filepath.Join(dir, "actually-a-dir")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := NewEngine().EditFile(context.Background(), path, "", "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestEngine_EditFile_CreateInMissingParentFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "deep", "file.txt")

	_, err := NewEngine().EditFile(context.Background(), path, "", "content")
	require.Error(t, err)
}
