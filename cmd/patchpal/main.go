package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/walteh/patchpal/cmd/patchpal/commands"
	"github.com/walteh/patchpal/cmd/patchpal/opts"
)

func main() {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "patchpal",
		Short: "An AI pair-programming assistant that edits files with fuzzy patches",
		Long: `patchpal is a chat-driven coding assistant. It talks to a language model,
hands it tools to scan the project, read files and edit them, and applies the
model's partial code edits onto your files by anchoring each fragment against
the file's current content.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now; logging and config depend on them.
			setupLogging()

			built, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*rootOpts = *built
			return nil
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewChatCmd(rootOpts),
		commands.NewApplyCmd(rootOpts),
		commands.NewTreeCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
