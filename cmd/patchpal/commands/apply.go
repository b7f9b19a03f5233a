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
	"io"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/cmd/patchpal/opts"
	"github.com/walteh/patchpal/pkg/patch"
	"github.com/walteh/patchpal/pkg/status"
)

// NewApplyCmd creates the apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		file         string
		editFile     string
		instructions string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a partial code edit to a file",
		Long: `Apply a partial code edit to a file. The edit uses "// ... existing code ..."
marker lines to elide unchanged regions; each remaining fragment is anchored
against the file's current content. The edit is read from --edit, or from
stdin when --edit is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), ro, file, editFile, instructions)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file to edit (required)")
	cmd.Flags().StringVarP(&editFile, "edit", "e", "", "file containing the code edit (defaults to stdin)")
	cmd.Flags().StringVarP(&instructions, "message", "m", "", "one-line description of the edit")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runApply(ctx context.Context, ro *opts.RootOpts, file, editFile, instructions string) error {
	codeEdit, err := readEdit(editFile)
	if err != nil {
		return err
	}

	engine := patch.NewEngine()
	res, err := engine.EditFile(ctx, file, instructions, codeEdit)
	if err != nil {
		return errors.Errorf("applying edit to %s: %w", file, err)
	}

	formatter := status.NewColorFormatter()
	ro.Console.Success(formatter.FormatResult(res))
	if len(res.Changes) > 0 {
		ro.Console.Plain(formatter.FormatDiff(res.Changes))
	}
	return nil
}

func readEdit(editFile string) (string, error) {
	if editFile == "" || editFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Errorf("reading edit from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(editFile)
	if err != nil {
		return "", errors.Errorf("reading edit file: %w", err)
	}
	return string(data), nil
}
