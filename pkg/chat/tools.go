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

package chat

import (
	"encoding/json"

	"github.com/walteh/patchpal/pkg/remote"
)

// SystemPrompt frames the assistant for hands-on software development work.
const SystemPrompt = `You are an expert software architect and developer. You will work with the user for software development tasks.
Always remember to keep your solutions simple and easy to understand.

When users ask about code, files, or want you to make changes, USE THE AVAILABLE TOOLS to provide hands-on assistance.

<available_tools>
You have access to these tools:
1. scan_directory - to see the project structure
2. read_file - to read file contents
3. edit_file - to apply a partial code edit to a file, using "// ... existing code ..." markers for unchanged regions
4. str_replace_based_edit_tool - to edit files with exact string replacement

IMPORTANT: When users ask you to fix code, add features, or make changes, you should:
1. Use scan_directory or read_file to understand the current state
2. Use edit_file or str_replace_based_edit_tool to make the actual changes
3. Show the user what you changed
</available_tools>

<tone>
Always reply in a warm tone, never be rude with the user. If you need clarifying questions, ask them in a friendly way.
</tone>

<response_format>
For general questions: Reply with a short answer from your knowledge.
For code questions: Use the available tools to provide a working solution.
</response_format>
`

const readFileDescription = `Read the contents of a file. The input is a string that is the path to the file.
The output is a string that is the complete contents of the file. If the file does not exist, an error message is returned.`

const scanDirectoryDescription = `Scan the current directory and return the tree structure.
The output is a string that is the tree structure. The input is an empty object.
You should use this tool whenever you are unsure about the current directory structure,
or when you don't know where a particular file is located.`

const editFileDescription = `Apply a partial code edit to a file. Provide the full lines you want in the file,
eliding unchanged regions with a "// ... existing code ..." marker line. The edit is anchored
against the file's current content, so include a few unchanged context lines around each change.
If the file does not exist it is created with the given content verbatim.`

// 🧰 toolDefinitions is the tool list offered to the model on every request
func toolDefinitions() []remote.Tool {
	return []remote.Tool{
		{
			Name:        "read_file",
			Description: readFileDescription,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"file_path": {"type": "string", "description": "The path to the file to read"}
				},
				"required": ["file_path"]
			}`),
		},
		{
			Name:        "scan_directory",
			Description: scanDirectoryDescription,
			InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
		},
		{
			Name:        "edit_file",
			Description: editFileDescription,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"target_file": {"type": "string", "description": "The path of the file to edit"},
					"instructions": {"type": "string", "description": "A short description of the edit"},
					"code_edit": {"type": "string", "description": "The edit content, with markers for elided regions"}
				},
				"required": ["target_file", "code_edit"]
			}`),
		},
		{
			Type: "text_editor_20250429",
			Name: "str_replace_based_edit_tool",
		},
	}
}

// editFileInput is the decoded input of an edit_file tool call.
type editFileInput struct {
	TargetFile   string `json:"target_file"`
	Instructions string `json:"instructions"`
	CodeEdit     string `json:"code_edit"`
}

// readFileInput is the decoded input of a read_file tool call.
type readFileInput struct {
	FilePath string `json:"file_path"`
}
