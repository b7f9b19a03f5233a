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

// Package chat runs the interactive assistant loop: it relays user input to
// the model, executes the tool calls the model makes, feeds the results back,
// and renders the model's replies. It performs no validation of edit
// specifications; the patch engine tolerates arbitrary input.
package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/pkg/editor"
	"github.com/walteh/patchpal/pkg/log"
	"github.com/walteh/patchpal/pkg/patch"
	"github.com/walteh/patchpal/pkg/remote"
	"github.com/walteh/patchpal/pkg/scan"
	"github.com/walteh/patchpal/pkg/status"
)

// 🔌 Applier applies a code edit to a file (implemented by patch.Engine)
type Applier interface {
	EditFile(ctx context.Context, path, instructions, codeEdit string) (*patch.Result, error)
}

// 🔌 TextEditor executes direct-edit commands (implemented by editor.Editor)
type TextEditor interface {
	Handle(ctx context.Context, req editor.Request) (*editor.Result, error)
}

// ⚙️ Options wires a Session's collaborators
type Options struct {
	Client   remote.ChatClient
	Applier  Applier
	Editor   TextEditor
	Console  *log.Logger
	Diffs    status.DiffFormatter
	ScanOpts scan.Options
	WorkDir  string    // directory scanned for structural context
	Input    io.Reader // user input; defaults to stdin
}

// 💬 Session is one interactive conversation with the model
type Session struct {
	opts     Options
	messages []remote.Message
}

// 🏭 NewSession creates a session from wired collaborators.
func NewSession(opts Options) (*Session, error) {
	if opts.Client == nil {
		return nil, errors.Errorf("chat client is required")
	}
	if opts.Applier == nil {
		return nil, errors.Errorf("applier is required")
	}
	if opts.Editor == nil {
		return nil, errors.Errorf("editor is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console logger is required")
	}
	if opts.Diffs == nil {
		opts.Diffs = status.NewColorFormatter()
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.WorkDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		opts.WorkDir = cwd
	}

	return &Session{opts: opts}, nil
}

// Tools returns the tool definitions a chat client should offer the model.
func Tools() []remote.Tool {
	return toolDefinitions()
}

// Run drives the conversation until the user types "exit" or input ends.
func (s *Session) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	scanner := bufio.NewScanner(s.opts.Input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	askUser := true

	for {
		if askUser {
			s.opts.Console.Plain("What do you want to talk about:")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return errors.Errorf("reading input: %w", err)
				}
				return nil
			}
			line := strings.TrimSpace(scanner.Text())

			if line == "exit" {
				s.opts.Console.Plain("I guess we are done here... Bye!")
				return nil
			}
			if line == "" {
				continue
			}

			s.messages = append(s.messages, remote.Message{Role: "user", Content: line})
		}

		resp, err := s.opts.Client.Send(ctx, s.messages)
		if err != nil {
			return errors.Errorf("sending chat request: %w", err)
		}

		if resp.StopReason == remote.StopReasonToolUse {
			askUser = false
			for _, call := range resp.ToolCalls() {
				result := s.dispatchTool(ctx, call)
				s.messages = append(s.messages, remote.Message{Role: "user", Content: result})
			}
			continue
		}

		logger.Debug().Str("stop_reason", resp.StopReason).Msg("model turn complete")
		s.opts.Console.Plain(resp.Text())
		askUser = true
	}
}

// dispatchTool executes one tool call and returns the text relayed back to the
// model. Tool failures are reported as text, never as loop-ending errors.
func (s *Session) dispatchTool(ctx context.Context, call remote.ContentBlock) string {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("tool", call.Name).Msg("dispatching tool call")

	switch call.Name {
	case "scan_directory":
		return s.runScan(ctx)
	case "read_file":
		return s.runReadFile(ctx, call.Input)
	case "edit_file":
		return s.runEditFile(ctx, call.Input)
	case "str_replace_based_edit_tool":
		return s.runTextEditor(ctx, call.Input)
	default:
		s.opts.Console.LogToolCall(log.ToolEvent{
			Kind: log.ToolError,
			Name: call.Name,
			Err:  errors.Errorf("unknown tool"),
		})
		return fmt.Sprintf("Tool execution failed: unknown tool %q", call.Name)
	}
}

func (s *Session) runScan(ctx context.Context) string {
	s.opts.Console.LogToolCall(log.ToolEvent{Kind: log.ToolScan, Name: "scan_directory", Target: s.opts.WorkDir})

	tree, err := scan.Tree(ctx, s.opts.WorkDir, s.opts.ScanOpts)
	if err != nil {
		return fmt.Sprintf("Tool execution failed: %v", err)
	}
	return fmt.Sprintf("Here is the tree structure: %s", tree)
}

func (s *Session) runReadFile(ctx context.Context, input json.RawMessage) string {
	var in readFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return fmt.Sprintf("Tool execution failed: invalid read_file input: %v", err)
	}

	s.opts.Console.LogToolCall(log.ToolEvent{Kind: log.ToolRead, Name: "read_file", Target: in.FilePath})

	content, err := os.ReadFile(in.FilePath)
	if err != nil {
		return fmt.Sprintf("Tool execution failed: %v", err)
	}
	return fmt.Sprintf("Here are the contents of the file %s :\n%s", in.FilePath, string(content))
}

func (s *Session) runEditFile(ctx context.Context, input json.RawMessage) string {
	var in editFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return fmt.Sprintf("Tool execution failed: invalid edit_file input: %v", err)
	}

	result, err := s.opts.Applier.EditFile(ctx, in.TargetFile, in.Instructions, in.CodeEdit)
	if err != nil {
		s.opts.Console.LogToolCall(log.ToolEvent{
			Kind:   log.ToolError,
			Name:   "edit_file",
			Target: in.TargetFile,
			Err:    err,
		})
		return fmt.Sprintf("Tool execution failed: %v", err)
	}

	summary := s.opts.Diffs.FormatResult(result)
	diff := s.opts.Diffs.FormatDiff(result.Changes)

	s.opts.Console.LogToolCall(log.ToolEvent{
		Kind:    log.ToolEdit,
		Name:    "edit_file",
		Target:  in.TargetFile,
		Summary: summary,
	})
	if diff != "" {
		s.opts.Console.Plain(diff)
	}

	return fmt.Sprintf("Tool execution successful: %s\n\nDiff:\n%s", summary, diff)
}

func (s *Session) runTextEditor(ctx context.Context, input json.RawMessage) string {
	var req editor.Request
	if err := json.Unmarshal(input, &req); err != nil {
		return fmt.Sprintf("Tool execution failed: invalid text editor input: %v", err)
	}

	result, err := s.opts.Editor.Handle(ctx, req)
	if err != nil {
		s.opts.Console.LogToolCall(log.ToolEvent{
			Kind:   log.ToolError,
			Name:   "str_replace_based_edit_tool",
			Target: req.Path,
			Err:    err,
		})
		return fmt.Sprintf("Tool execution failed: %v", err)
	}

	kind := log.ToolEdit
	if !result.Success {
		kind = log.ToolError
	}
	s.opts.Console.LogToolCall(log.ToolEvent{
		Kind:    kind,
		Name:    req.Command,
		Target:  req.Path,
		Summary: result.Message,
	})

	if !result.Success {
		return fmt.Sprintf("Tool execution failed: %s", result.Message)
	}
	if result.FileContent != nil {
		return fmt.Sprintf("Tool execution successful: %s\n\nFile content:\n%s", result.Message, *result.FileContent)
	}
	return fmt.Sprintf("Tool execution successful: %s", result.Message)
}
