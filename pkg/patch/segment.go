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
	"regexp"
	"strings"
)

// 🔖 markerPattern recognizes an elision-marker line: a comment token followed by
// "existing code", case and spacing insensitive (e.g. "// ... existing code ...").
var markerPattern = regexp.MustCompile(`(?i)//\s*\.\.\.\s*existing\s*code\s*\.\.\.`)

// IsMarker reports whether a single line is an elision marker.
func IsMarker(line string) bool {
	return markerPattern.MatchString(line)
}

// splitFragments splits the edit text into ordered literal fragments at
// elision-marker lines. Adjacent markers yield no fragment. If segmentation
// produces nothing but the text has lines, the whole text is one fragment.
func splitFragments(editLines []string) [][]string {
	var fragments [][]string
	var current []string

	for _, line := range editLines {
		if IsMarker(line) {
			if len(current) > 0 {
				fragments = append(fragments, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		fragments = append(fragments, current)
	}

	// Degrade gracefully rather than fail: marker-free or pathological input is
	// treated as a single fragment.
	if len(fragments) == 0 && len(editLines) > 0 {
		fragments = append(fragments, editLines)
	}

	return fragments
}

// splitLines seeds a working buffer from file content. A trailing newline does
// not produce a trailing empty line, and CRLF endings are tolerated.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
