// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package editor implements the direct-edit command set used by the model's
// built-in text-editor tool: view, create, str_replace, insert and undo_edit.
// Command failures are reported in the Result (the tool loop relays them back
// to the model as text); a Go error is reserved for plumbing failures.
package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/pkg/editor/backup"
)

// 📨 Request is one decoded text-editor tool invocation
type Request struct {
	Command    string `json:"command"`
	Path       string `json:"path"`
	OldStr     string `json:"old_str,omitempty"`
	NewStr     string `json:"new_str,omitempty"`
	FileText   string `json:"file_text,omitempty"`
	InsertLine int    `json:"insert_line,omitempty"`
}

// 📦 Result is the outcome of one text-editor command
type Result struct {
	Success     bool    // whether the command succeeded
	Message     string  // human-readable outcome, relayed to the model
	FileContent *string // file content after the command, when available
	ChangesMade bool    // whether the file on disk changed
}

// ✏️ Editor executes text-editor commands against the filesystem
type Editor struct {
	backups      *backup.Store
	modelVersion string
}

// 🏭 New creates an editor backed by the given snapshot store. modelVersion
// gates commands that some model generations' editor tools no longer support.
func New(backups *backup.Store, modelVersion string) *Editor {
	return &Editor{
		backups:      backups,
		modelVersion: modelVersion,
	}
}

// Handle dispatches a text-editor command.
func (e *Editor) Handle(ctx context.Context, req Request) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("command", req.Command).Str("path", req.Path).Msg("text editor command")

	switch req.Command {
	case "view":
		return e.view(req.Path), nil
	case "str_replace":
		return e.strReplace(req.Path, req.OldStr, req.NewStr), nil
	case "create":
		return e.create(req.Path, req.FileText)
	case "insert":
		return e.insert(req.Path, req.InsertLine, req.NewStr), nil
	case "undo_edit":
		return e.undoEdit(req.Path), nil
	default:
		return failure(fmt.Sprintf("Unknown command: %s", req.Command)), nil
	}
}

func (e *Editor) view(path string) *Result {
	if path == "" {
		return failure("File path is required for view command")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Sprintf("Failed to read file %s: %v", path, err))
	}

	text := string(content)
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Successfully read file: %s", path),
		FileContent: &text,
	}
}

func (e *Editor) strReplace(path, oldStr, newStr string) *Result {
	if path == "" || oldStr == "" {
		return failure("File path and old_str are required for str_replace command")
	}

	current, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Sprintf("Failed to read file %s: %v", path, err))
	}
	currentContent := string(current)

	// Snapshot before any mutation so the edit can be undone.
	e.backups.Save(path, currentContent)

	if !strings.Contains(currentContent, oldStr) {
		return &Result{
			Success:     false,
			Message:     fmt.Sprintf("String %q not found in file %s", oldStr, path),
			FileContent: &currentContent,
		}
	}

	newContent := strings.ReplaceAll(currentContent, oldStr, newStr)
	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		return failure(fmt.Sprintf("Failed to write to file %s: %v", path, err))
	}

	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Successfully replaced text in %s", path),
		FileContent: &newContent,
		ChangesMade: true,
	}
}

func (e *Editor) create(path, fileText string) (*Result, error) {
	if path == "" {
		return failure("File path is required for create command"), nil
	}

	if _, err := os.Stat(path); err == nil {
		return failure(fmt.Sprintf("File %s already exists. Use str_replace to modify existing files.", path)), nil
	}

	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, errors.Errorf("creating parent directories for %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(fileText), 0o644); err != nil {
		return failure(fmt.Sprintf("Failed to create file %s: %v", path, err)), nil
	}

	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Successfully created file: %s", path),
		FileContent: &fileText,
		ChangesMade: true,
	}, nil
}

func (e *Editor) insert(path string, insertLine int, newStr string) *Result {
	if path == "" {
		return failure("File path is required for insert command")
	}

	current, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Sprintf("Failed to read file %s: %v", path, err))
	}
	currentContent := string(current)

	e.backups.Save(path, currentContent)

	lines := splitLines(currentContent)

	// insert_line is 1-based.
	if insertLine <= 0 || insertLine > len(lines)+1 {
		return &Result{
			Success:     false,
			Message:     fmt.Sprintf("Invalid line number: %d. File has %d lines.", insertLine, len(lines)),
			FileContent: &currentContent,
		}
	}

	index := insertLine - 1
	newLines := make([]string, 0, len(lines)+1)
	newLines = append(newLines, lines[:index]...)
	newLines = append(newLines, newStr)
	newLines = append(newLines, lines[index:]...)

	newContent := strings.Join(newLines, "\n")
	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		return failure(fmt.Sprintf("Failed to write to file %s: %v", path, err))
	}

	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Successfully inserted text at line %d in %s", insertLine, path),
		FileContent: &newContent,
		ChangesMade: true,
	}
}

func (e *Editor) undoEdit(path string) *Result {
	// Newer model generations ship an editor tool without undo support.
	if strings.Contains(e.modelVersion, "claude-sonnet-4") || strings.Contains(e.modelVersion, "claude-4") {
		return failure("undo_edit command is not supported by this model's editor tool version")
	}

	if path == "" {
		return failure("File path is required for undo_edit command")
	}

	snap, ok := e.backups.Take(path)
	if !ok {
		return failure(fmt.Sprintf("No backup found for file: %s", path))
	}

	if err := os.WriteFile(path, []byte(snap.Content), 0o644); err != nil {
		// The snapshot was already consumed; put it back so a retry can work.
		e.backups.Save(path, snap.Content)
		return failure(fmt.Sprintf("Failed to restore file %s: %v", path, err))
	}

	restored := snap.Content
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Successfully restored %s from backup created at %s",
			path, snap.Timestamp.Format("2006-01-02 15:04:05 UTC")),
		FileContent: &restored,
		ChangesMade: true,
	}
}

func failure(msg string) *Result {
	return &Result{Message: msg}
}

// splitLines splits content into lines without a trailing empty entry for a
// final newline, matching how the rest of the tool set counts lines.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
