package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/patchpal/pkg/editor/backup"
)

func newTestEditor() *Editor {
	return New(backup.NewStore(), "claude-3-7-sonnet-latest")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEditor_View(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "hello\nworld\n")

	res, err := newTestEditor().Handle(context.Background(), Request{Command: "view", Path: path})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.ChangesMade)
	require.NotNil(t, res.FileContent)
	assert.Equal(t, "hello\nworld\n", *res.FileContent)
}

func TestEditor_View_MissingFile(t *testing.T) {
	res, err := newTestEditor().Handle(context.Background(), Request{
		Command: "view",
		Path:    filepath.Join(t.TempDir(), "nope.txt"),
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Failed to read file")
}

func TestEditor_StrReplace(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		oldStr      string
		newStr      string
		wantSuccess bool
		wantContent string
	}{
		{
			name:        "single_occurrence",
			content:     "hello world",
			oldStr:      "world",
			newStr:      "universe",
			wantSuccess: true,
			wantContent: "hello universe",
		},
		{
			name:        "all_occurrences_replaced",
			content:     "x = x + x",
			oldStr:      "x",
			newStr:      "y",
			wantSuccess: true,
			wantContent: "y = y + y",
		},
		{
			name:        "not_found",
			content:     "hello world",
			oldStr:      "missing",
			newStr:      "anything",
			wantSuccess: false,
			wantContent: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "f.txt", tt.content)

			res, err := newTestEditor().Handle(context.Background(), Request{
				Command: "str_replace",
				Path:    path,
				OldStr:  tt.oldStr,
				NewStr:  tt.newStr,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, res.Success)
			onDisk, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(onDisk))
		})
	}
}

func TestEditor_StrReplace_RequiresArgs(t *testing.T) {
	res, err := newTestEditor().Handle(context.Background(), Request{Command: "str_replace", Path: ""})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "required")
}

func TestEditor_Create(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dirs", "new.txt")

	res, err := newTestEditor().Handle(context.Background(), Request{
		Command:  "create",
		Path:     path,
		FileText: "fresh content",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.ChangesMade)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh content", string(onDisk))
}

func TestEditor_Create_RefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "exists.txt", "old")

	res, err := newTestEditor().Handle(context.Background(), Request{
		Command:  "create",
		Path:     path,
		FileText: "new",
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "already exists")

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(onDisk))
}

func TestEditor_Insert(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		line        int
		newStr      string
		wantSuccess bool
		wantContent string
	}{
		{
			name:        "insert_at_top",
			content:     "b\nc",
			line:        1,
			newStr:      "a",
			wantSuccess: true,
			wantContent: "a\nb\nc",
		},
		{
			name:        "insert_in_middle",
			content:     "a\nc",
			line:        2,
			newStr:      "b",
			wantSuccess: true,
			wantContent: "a\nb\nc",
		},
		{
			name:        "insert_after_last_line",
			content:     "a\nb",
			line:        3,
			newStr:      "c",
			wantSuccess: true,
			wantContent: "a\nb\nc",
		},
		{
			name:        "line_zero_rejected",
			content:     "a\nb",
			line:        0,
			newStr:      "x",
			wantSuccess: false,
			wantContent: "a\nb",
		},
		{
			name:        "line_beyond_end_rejected",
			content:     "a\nb",
			line:        5,
			newStr:      "x",
			wantSuccess: false,
			wantContent: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "f.txt", tt.content)

			res, err := newTestEditor().Handle(context.Background(), Request{
				Command:    "insert",
				Path:       path,
				InsertLine: tt.line,
				NewStr:     tt.newStr,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, res.Success)
			onDisk, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(onDisk))
		})
	}
}

func TestEditor_UndoEdit_RestoresBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.txt", "original")
	ed := newTestEditor()
	ctx := context.Background()

	_, err := ed.Handle(ctx, Request{Command: "str_replace", Path: path, OldStr: "original", NewStr: "modified"})
	require.NoError(t, err)

	res, err := ed.Handle(ctx, Request{Command: "undo_edit", Path: path})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "restored")

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(onDisk))

	// The snapshot is consumed; a second undo has nothing to restore.
	res, err = ed.Handle(ctx, Request{Command: "undo_edit", Path: path})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "No backup found")
}

func TestEditor_UndoEdit_RefusedForNewerModels(t *testing.T) {
	ed := New(backup.NewStore(), "claude-sonnet-4-20250514")

	res, err := ed.Handle(context.Background(), Request{Command: "undo_edit", Path: "/tmp/whatever"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not supported")
}

func TestEditor_UnknownCommand(t *testing.T) {
	res, err := newTestEditor().Handle(context.Background(), Request{Command: "destroy"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Unknown command")
}
