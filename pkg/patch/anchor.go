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

import "strings"

const (
	// 🎚️ fuzzyThreshold is the minimum similarity a fuzzy match must exceed
	// before it is trusted over the index-0 default.
	fuzzyThreshold = 0.6

	// 🔍 maxContextLines is how many leading non-empty fragment lines are
	// considered matching context.
	maxContextLines = 3
)

// findAnchor locates the buffer line index where a fragment belongs. It never
// fails: exact match on the fragment's first non-empty line wins (first
// occurrence, scanning top to bottom), otherwise the highest-similarity line
// wins if it clears fuzzyThreshold, otherwise index 0.
func findAnchor(fragment, buffer []string) int {
	if len(fragment) == 0 || len(buffer) == 0 {
		return 0
	}

	var contextLines []string
	for _, line := range fragment {
		if strings.TrimSpace(line) == "" {
			continue
		}
		contextLines = append(contextLines, line)
		if len(contextLines) == maxContextLines {
			break
		}
	}
	if len(contextLines) == 0 {
		return 0
	}

	contextLine := contextLines[0]

	// Exact pass: first match wins, not closest.
	for i, line := range buffer {
		if line == contextLine {
			return i
		}
	}

	// Fuzzy pass: ties keep the first index achieving the maximum.
	bestScore := 0.0
	bestPos := 0
	for i, line := range buffer {
		if score := similarity(line, contextLine); score > bestScore {
			bestScore = score
			bestPos = i
		}
	}

	if bestScore > fuzzyThreshold {
		return bestPos
	}

	// Low confidence: silently default to the top of the file.
	return 0
}

// similarity is a normalized Levenshtein score in [0,1]: 1 − distance/maxLen,
// defined as 1.0 when both strings are empty. It is symmetric.
func similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)

	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(ar, br))/float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices with the
// classic two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
