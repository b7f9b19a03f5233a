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

package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 ToolEventKind classifies a tool dispatch for display
type ToolEventKind int

const (
	ToolRead ToolEventKind = iota
	ToolScan
	ToolEdit
	ToolError
)

// 🛠️ ToolEvent describes one tool dispatch for user-facing output
type ToolEvent struct {
	Kind    ToolEventKind
	Name    string // tool name as the model called it
	Target  string // file or directory the tool touched, if any
	Summary string // one-line outcome
	Err     error
}

// 📢 Logger mirrors user-facing console output to zerolog
type Logger struct {
	zlog zerolog.Logger
}

// 🏭 New creates a console logger from the context's zerolog logger
func New(ctx context.Context) *Logger {
	return &Logger{
		zlog: *zerolog.Ctx(ctx),
	}
}

// Header prints the application banner with a message.
func (l *Logger) Header(msg string) {
	name := pterm.Bold.Sprint(pterm.Cyan("patchpal"))
	pterm.Printf("\n%s %s\n\n", name, pterm.Gray("• "+msg))
	l.zlog.Info().Msg(msg)
}

// Info prints an informational message.
func (l *Logger) Info(msg string) {
	pterm.Info.Println(msg)
	l.zlog.Info().Msg(msg)
}

// Success prints a success message.
func (l *Logger) Success(msg string) {
	pterm.Success.Println(msg)
	l.zlog.Info().Msg(msg)
}

// Warning prints a warning message.
func (l *Logger) Warning(msg string) {
	pterm.Warning.Println(msg)
	l.zlog.Warn().Msg(msg)
}

// Error prints an error message.
func (l *Logger) Error(msg string) {
	pterm.Error.Println(msg)
	l.zlog.Error().Msg(msg)
}

// Infof prints a formatted informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// Plain prints text without any prefix or level, for model replies and diffs.
func (l *Logger) Plain(text string) {
	pterm.Println(text)
}

// LogToolCall prints one tool dispatch with a kind-appropriate prefix.
func (l *Logger) LogToolCall(ev ToolEvent) {
	var printer *pterm.PrefixPrinter
	switch ev.Kind {
	case ToolRead:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "📖"})
	case ToolScan:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "🌲"})
	case ToolEdit:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✏️"})
	case ToolError:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := ev.Name
	if ev.Target != "" {
		msg += " " + ev.Target
	}
	if ev.Summary != "" {
		msg += fmt.Sprintf(" (%s)", ev.Summary)
	}

	if ev.Err != nil {
		printer.Println(msg)
		pterm.Error.Println(ev.Err)
		l.zlog.Error().Err(ev.Err).Str("tool", ev.Name).Str("target", ev.Target).Msg("tool call failed")
		return
	}

	printer.Println(msg)
	l.zlog.Info().Str("tool", ev.Name).Str("target", ev.Target).Msg("tool call")
}
