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

// Package remote defines the provider-neutral chat API surface the assistant
// talks through. Concrete providers live in subpackages.
package remote

import (
	"context"
	"encoding/json"
)

// 💬 Message is one turn of the chat transcript
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// 🔧 Tool describes a tool the model may call. Custom tools carry a
// description and input schema; provider built-ins carry a type instead.
type Tool struct {
	Type        string          `json:"type,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"`
}

// 🧱 ContentBlock is one block of a model response: text or a tool call
type ContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// 📦 Response is a complete model reply
type Response struct {
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
}

// StopReasonToolUse indicates the model paused to call tools.
const StopReasonToolUse = "tool_use"

// BlockTypeText and BlockTypeToolUse classify response content blocks.
const (
	BlockTypeText    = "text"
	BlockTypeToolUse = "tool_use"
)

// 🔌 ChatClient sends a transcript to a language model and returns its reply
type ChatClient interface {
	Send(ctx context.Context, messages []Message) (*Response, error)
}

// Text concatenates the text blocks of a response.
func (r *Response) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			out += block.Text
		}
	}
	return out
}

// ToolCalls returns the tool_use blocks of a response, in order.
func (r *Response) ToolCalls() []ContentBlock {
	var calls []ContentBlock
	for _, block := range r.Content {
		if block.Type == BlockTypeToolUse {
			calls = append(calls, block)
		}
	}
	return calls
}
