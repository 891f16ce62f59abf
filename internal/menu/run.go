package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"danmuflow/internal/logging"
)

// Runner drives the interactive menu loop. It owns no state beyond the
// static action table; every iteration reads one selection, executes at most
// one action, waits for acknowledgment, and redisplays the menu.
type Runner struct {
	actions []Action
	in      *bufio.Scanner
	out     io.Writer
	exec    CommandRunner
	logger  *slog.Logger
}

// New constructs a menu runner reading selections from in and printing to
// out.
func New(actions []Action, in io.Reader, out io.Writer, exec CommandRunner, logger *slog.Logger) *Runner {
	return &Runner{
		actions: actions,
		in:      bufio.NewScanner(in),
		out:     out,
		exec:    exec,
		logger:  logging.WithComponent(logger, "menu"),
	}
}

// Run loops until the exit entry is selected or the input stream ends. Step
// failures are reported and swallowed; only context cancellation or a read
// error ends the loop early.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.printMenu()
		choice, ok := r.readLine("Choice: ")
		if !ok {
			return r.in.Err()
		}

		action, found := r.lookup(choice)
		if !found {
			fmt.Fprintf(r.out, "Invalid choice: %q\n", choice)
			r.pause()
			continue
		}
		if action.Terminal {
			r.logger.Info("menu exited")
			return nil
		}

		r.runAction(ctx, action)
		r.pause()
	}
}

func (r *Runner) printMenu() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "danmuflow")
	for _, action := range r.actions {
		fmt.Fprintf(r.out, "  %s. %s\n", action.Key, action.Label)
	}
}

func (r *Runner) lookup(choice string) (Action, bool) {
	for _, action := range r.actions {
		if action.Key == choice {
			return action, true
		}
	}
	return Action{}, false
}

// runAction executes the action's steps in order, stopping at the first
// failure. Printed messages are the only result.
func (r *Runner) runAction(ctx context.Context, action Action) {
	for i, step := range action.Steps {
		r.logger.Info("running step",
			slog.String("action", action.Label),
			slog.String("step", step.Name),
		)
		if err := r.exec.Run(ctx, step.Command); err != nil {
			fmt.Fprintf(r.out, "Step %q failed, skipping the rest of %q\n", step.Name, action.Label)
			r.logger.Error("step failed",
				slog.String("step", step.Name),
				slog.Any("error", err),
			)
			return
		}
		if next := i + 1; next < len(action.Steps) {
			fmt.Fprintf(r.out, "Step %q finished, starting %q\n", step.Name, action.Steps[next].Name)
		}
	}
	fmt.Fprintf(r.out, "%s completed\n", action.Label)
}

func (r *Runner) readLine(prompt string) (string, bool) {
	fmt.Fprint(r.out, prompt)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// pause blocks until the user acknowledges with a line of input.
func (r *Runner) pause() {
	_, _ = r.readLine("Press Enter to return to the menu...")
}
