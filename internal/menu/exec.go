package menu

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner invokes one external command and reports only its exit
// status. Stdout and stderr go straight to the interactive console.
type CommandRunner interface {
	Run(ctx context.Context, command []string) error
}

// execRunner runs commands as child processes with inherited stdio. There is
// no timeout: a step that never exits blocks the menu, matching the blocking
// nature of every other interaction in the loop.
type execRunner struct{}

// NewCommandRunner returns the process-spawning runner used outside tests.
func NewCommandRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, command []string) error {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
