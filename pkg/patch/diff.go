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

package patch

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffLines computes a tagged line-level diff between the original and final
// content. Lines are diffed as atoms (rune-encoded line tokens), so the result
// is a conventional line diff: context and deletions in original order,
// insertions at their resulting position.
func diffLines(original, final string) []DiffLine {
	dmp := diffmatchpatch.New()

	rOld, rNew, lineArray := dmp.DiffLinesToRunes(original, final)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	// Decode the rune-string back into original lines via the lineArray mapping.
	decode := func(s string) []string {
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	var changes []DiffLine
	appendLines := func(tag DiffTag, encoded string) {
		for _, line := range decode(encoded) {
			changes = append(changes, DiffLine{
				Tag:  tag,
				Text: strings.TrimSuffix(line, "\n"),
			})
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			appendLines(TagUnchanged, d.Text)
		case diffmatchpatch.DiffDelete:
			appendLines(TagRemoved, d.Text)
		case diffmatchpatch.DiffInsert:
			appendLines(TagAdded, d.Text)
		}
	}

	return changes
}
