package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"danmuflow/internal/menu"
)

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive pipeline menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, ctx)
		},
	}
}

func runMenu(cmd *cobra.Command, ctx *commandContext) error {
	if !isInteractiveTerminal() {
		return errors.New("the menu needs an interactive terminal; run a subcommand directly instead")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	self, err := selfInvocation(ctx)
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	runner := menu.New(
		menu.Actions(cfg, self),
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
		menu.NewCommandRunner(),
		ctx.logger(),
	)
	return runner.Run(cmd.Context())
}

func isInteractiveTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// selfInvocation is the command prefix menu steps use to re-enter this
// binary. An explicit --config flag is forwarded so child invocations read
// the same file.
func selfInvocation(ctx *commandContext) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	self := []string{exe}
	if ctx.configFlag != nil {
		if path := strings.TrimSpace(*ctx.configFlag); path != "" {
			self = append(self, "--config", path)
		}
	}
	return self, nil
}
