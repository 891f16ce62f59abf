package danmu2ass

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"danmuflow/internal/config"
	"danmuflow/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	// Run executes binary with args and returns combined output for error
	// reporting.
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps danmu2ass CLI interactions.
type Client struct {
	preset config.Danmu2Ass
	exec   Executor
}

// New constructs a danmu2ass client from the [danmu2ass] config section.
func New(preset config.Danmu2Ass, opts ...Option) (*Client, error) {
	if strings.TrimSpace(preset.Binary) == "" {
		return nil, errors.New("danmu2ass binary required")
	}
	client := &Client{preset: preset, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Args assembles the danmu2ass command line for one XML input. The --no-web
// flag keeps the tool in CLI mode.
func (c *Client) Args(xmlPath, assPath string) []string {
	p := c.preset
	args := []string{
		"--width", strconv.Itoa(p.Width),
		"--height", strconv.Itoa(p.Height),
		"--float-percentage", formatFloat(p.FloatPercentage),
		"--font-size", strconv.Itoa(p.FontSize),
		"--width-ratio", formatFloat(p.WidthRatio),
		"--horizontal-gap", strconv.Itoa(p.HorizontalGap),
		"--lane-size", strconv.Itoa(p.LaneSize),
		"--font", p.Font,
	}
	if p.Bold {
		args = append(args, "--bold")
	}
	args = append(args,
		"--outline", formatFloat(p.Outline),
		"--alpha", formatFloat(p.Alpha),
		"--duration", strconv.Itoa(p.DurationSeconds),
		"--no-web",
		"-o", assPath,
		xmlPath,
	)
	return args
}

// Convert renders one danmaku XML file to a sibling .ass file and returns the
// output path.
func (c *Client) Convert(ctx context.Context, xmlPath string) (string, error) {
	if strings.TrimSpace(xmlPath) == "" {
		return "", services.Wrap(services.ErrValidation, "convert", "danmu2ass", "input path is required", nil)
	}
	assPath := OutputPath(xmlPath)

	output, err := c.exec.Run(ctx, c.preset.Binary, c.Args(xmlPath, assPath))
	if err != nil {
		detail := xmlPath
		if trimmed := strings.TrimSpace(output); trimmed != "" {
			detail = fmt.Sprintf("%s: %s", xmlPath, trimmed)
		}
		return "", services.Wrap(services.ErrExternalTool, "convert", "danmu2ass", detail, err)
	}
	return assPath, nil
}

// OutputPath returns the .ass path for a danmaku XML input.
func OutputPath(xmlPath string) string {
	if idx := strings.LastIndex(xmlPath, "."); idx > 0 {
		return xmlPath[:idx] + ".ass"
	}
	return xmlPath + ".ass"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, args...).CombinedOutput() //nolint:gosec
	return string(out), err
}
