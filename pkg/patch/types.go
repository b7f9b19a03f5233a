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

// 🏷️ DiffTag classifies a single line of a reported diff
type DiffTag int

const (
	TagUnchanged DiffTag = iota // line present in both versions
	TagRemoved                  // line present only in the original
	TagAdded                    // line present only in the final content
)

// 📝 DiffLine is one tagged line of the reported diff
type DiffLine struct {
	Tag  DiffTag // what happened to the line
	Text string  // line content, without trailing newline
}

// 📦 Result describes the outcome of applying a code edit to a file
type Result struct {
	Success bool       // whether the edit was applied
	File    string     // target file path
	IsNew   bool       // true when the file was created rather than modified
	Changes []DiffLine // ordered line diff between original and final content
}

// String renders the conventional one-character diff prefix for a tag.
func (t DiffTag) String() string {
	switch t {
	case TagRemoved:
		return "-"
	case TagAdded:
		return "+"
	default:
		return " "
	}
}
