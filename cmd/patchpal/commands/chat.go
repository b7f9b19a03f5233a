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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/cmd/patchpal/opts"
	"github.com/walteh/patchpal/pkg/chat"
	"github.com/walteh/patchpal/pkg/config"
	"github.com/walteh/patchpal/pkg/editor"
	"github.com/walteh/patchpal/pkg/patch"
	"github.com/walteh/patchpal/pkg/remote/anthropic"
	"github.com/walteh/patchpal/pkg/scan"
	"github.com/walteh/patchpal/pkg/status"
)

// NewChatCmd creates the chat command
func NewChatCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session with the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), ro)
		},
	}
}

func runChat(ctx context.Context, ro *opts.RootOpts) error {
	cfg := ro.Config

	key, err := cfg.Model.APIKey()
	if err != nil {
		return errors.Errorf("resolving API key: %w", err)
	}

	client, err := anthropic.New(anthropic.Options{
		APIKey:      key,
		BaseURL:     cfg.Model.BaseURL,
		Model:       cfg.Model.Name,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
		System:      chat.SystemPrompt,
		Tools:       chat.Tools(),
	})
	if err != nil {
		return errors.Errorf("creating model client: %w", err)
	}

	session, err := chat.NewSession(chat.Options{
		Client:   client,
		Applier:  patch.NewEngine(),
		Editor:   editor.New(ro.Backups, cfg.Model.Name),
		Console:  ro.Console,
		Diffs:    status.NewColorFormatter(),
		ScanOpts: scanOptions(cfg.Scan),
	})
	if err != nil {
		return errors.Errorf("creating session: %w", err)
	}

	ro.Console.Header("patchpal")
	ro.Console.Infof("model: %s", cfg.Model.Name)

	return session.Run(ctx)
}

// scanOptions translates configured scanner settings to scan.Options.
func scanOptions(sc *config.ScanConfig) scan.Options {
	if sc == nil {
		return scan.Options{}
	}
	return scan.Options{
		IgnoreDirs:     sc.IgnoreDirs,
		IgnoreFiles:    sc.IgnoreFiles,
		IgnorePatterns: sc.IgnorePatterns,
	}
}
