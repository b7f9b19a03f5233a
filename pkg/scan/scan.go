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

// Package scan renders a directory's structure as a tree string, the context
// the chat loop hands to the model. The patch engine never consumes it.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 DefaultIgnoredDirs are directory names skipped in every scan
var DefaultIgnoredDirs = []string{
	"target",
	".git",
	"node_modules",
	"dist",
	"build",
	"out",
	"__pycache__",
	".venv",
	"venv",
	"env",
}

// 🚫 DefaultIgnoredFiles are file names skipped in every scan
var DefaultIgnoredFiles = []string{
	".DS_Store",
}

// ⚙️ Options controls what a scan skips
type Options struct {
	IgnoreDirs     []string // directory names to skip (added to the defaults)
	IgnoreFiles    []string // file names to skip (added to the defaults)
	IgnorePatterns []string // doublestar globs matched against root-relative paths
}

// Tree scans root and returns its structure as an indented tree string with
// box-drawing connectors. Entries are sorted by name for deterministic output.
func Tree(ctx context.Context, root string, opts Options) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("root", root).Msg("scanning directory tree")

	info, err := os.Stat(root)
	if err != nil {
		return "", errors.Errorf("scanning %s: %w", root, err)
	}

	var b strings.Builder
	b.WriteString(filepath.Base(root))
	b.WriteByte('\n')

	if info.IsDir() {
		if err := walk(root, root, "", &opts, &b); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

// CurrentTree scans the process working directory.
func CurrentTree(ctx context.Context, opts Options) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Errorf("getting working directory: %w", err)
	}
	return Tree(ctx, cwd, opts)
}

func walk(root, dir, prefix string, opts *Options, b *strings.Builder) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", dir, err)
	}

	kept := entries[:0]
	for _, entry := range entries {
		skip, err := ignored(root, dir, entry.Name(), entry.IsDir(), opts)
		if err != nil {
			return err
		}
		if !skip {
			kept = append(kept, entry)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Name() < kept[j].Name() })

	for i, entry := range kept {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(kept)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(entry.Name())
		b.WriteByte('\n')

		if entry.IsDir() {
			if err := walk(root, filepath.Join(dir, entry.Name()), childPrefix, opts, b); err != nil {
				return err
			}
		}
	}

	return nil
}

func ignored(root, dir, name string, isDir bool, opts *Options) (bool, error) {
	if isDir {
		for _, ignore := range DefaultIgnoredDirs {
			if name == ignore {
				return true, nil
			}
		}
		for _, ignore := range opts.IgnoreDirs {
			if name == ignore {
				return true, nil
			}
		}
	} else {
		for _, ignore := range DefaultIgnoredFiles {
			if name == ignore {
				return true, nil
			}
		}
		for _, ignore := range opts.IgnoreFiles {
			if name == ignore {
				return true, nil
			}
		}
	}

	if len(opts.IgnorePatterns) == 0 {
		return false, nil
	}

	rel, err := filepath.Rel(root, filepath.Join(dir, name))
	if err != nil {
		return false, errors.Errorf("resolving relative path for %s: %w", name, err)
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range opts.IgnorePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
