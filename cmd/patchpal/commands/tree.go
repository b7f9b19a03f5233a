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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/cmd/patchpal/opts"
	"github.com/walteh/patchpal/pkg/scan"
)

// NewTreeCmd creates the tree command
func NewTreeCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print the project tree the assistant sees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			out, err := scan.Tree(cmd.Context(), root, scanOptions(ro.Config.Scan))
			if err != nil {
				return errors.Errorf("scanning %s: %w", root, err)
			}

			ro.Console.Plain(out)
			return nil
		},
	}
}
