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

// Package patch applies partial code-edit fragments onto existing files.
//
// An edit specification may elide unchanged regions with "// ... existing
// code ..." marker lines. For each literal fragment between markers the engine
// infers an anchor line in the current file (exact match first, then fuzzy),
// splices the fragment over a bounded window around the anchor, and reports
// the overall change as a tagged line diff. Placement is an explicit
// best-effort heuristic: a low-confidence match silently anchors at the top of
// the file, and the replacement window can under- or over-cover the intended
// region.
package patch

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Engine applies code edits to files on disk
type Engine struct{}

// 🏭 NewEngine creates a new patch engine
func NewEngine() *Engine {
	return &Engine{}
}

// EditFile applies codeEdit to the file at path and reports the result as a
// line diff. If path does not exist, codeEdit is written verbatim as the new
// file's content and no matching runs. Otherwise each fragment of codeEdit is
// anchored and spliced, in order, into a single working buffer seeded from the
// file's current lines; the buffer is then written back over path in place.
//
// instructions is descriptive metadata only; it never affects placement.
//
// Writes are direct overwrites, not atomic, and there is no rollback: an I/O
// failure after the write leaves the file modified. Concurrent calls on the
// same path race with last-writer-wins semantics.
func (e *Engine) EditFile(ctx context.Context, path, instructions, codeEdit string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("file", path).Str("instructions", instructions).Msg("editing file")

	original, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Errorf("reading %s: %w", path, err)
		}
		return e.createFile(ctx, path, codeEdit)
	}

	originalContent := string(original)

	buffer := splitLines(originalContent)
	fragments := splitFragments(splitLines(codeEdit))

	for _, fragment := range fragments {
		anchor := findAnchor(fragment, buffer)
		logger.Trace().Int("anchor", anchor).Int("fragment_lines", len(fragment)).Msg("splicing fragment")
		buffer = spliceBlock(buffer, anchor, fragment)
	}

	finalContent := strings.Join(buffer, "\n")
	if err := os.WriteFile(path, []byte(finalContent), 0o644); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}

	return &Result{
		Success: true,
		File:    path,
		IsNew:   false,
		Changes: diffLines(originalContent, finalContent),
	}, nil
}

// createFile writes codeEdit verbatim as a new file and reports every line as
// added.
func (e *Engine) createFile(ctx context.Context, path, codeEdit string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("file", path).Msg("creating new file")

	if err := os.WriteFile(path, []byte(codeEdit), 0o644); err != nil {
		return nil, errors.Errorf("creating %s: %w", path, err)
	}

	lines := splitLines(codeEdit)
	changes := make([]DiffLine, 0, len(lines))
	for _, line := range lines {
		changes = append(changes, DiffLine{Tag: TagAdded, Text: line})
	}

	return &Result{
		Success: true,
		File:    path,
		IsNew:   true,
		Changes: changes,
	}, nil
}
