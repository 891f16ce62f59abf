package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"danmuflow/internal/config"
	"danmuflow/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	// Run executes binary with args, with the working directory set to dir.
	Run(ctx context.Context, dir, binary string, args []string) error
	// Output executes binary with args and returns its stdout.
	Output(ctx context.Context, binary string, args []string) (string, error)
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

// Client wraps yt-dlp invocations.
type Client struct {
	opts config.YtDlp
	exec Executor
}

// New constructs a yt-dlp client from the [ytdlp] config section.
func New(opts config.YtDlp, clientOpts ...Option) (*Client, error) {
	if strings.TrimSpace(opts.Binary) == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{opts: opts, exec: commandExecutor{}}
	for _, opt := range clientOpts {
		opt(client)
	}
	return client, nil
}

// BuildArgs assembles the yt-dlp command line for one URL. The output
// template is anchored inside downloadDir.
func (c *Client) BuildArgs(url, downloadDir string) []string {
	var args []string
	if c.opts.Format != "" {
		args = append(args, "-f", c.opts.Format)
	}
	if c.opts.FormatSort != "" {
		args = append(args, "--format-sort", c.opts.FormatSort)
	}
	if c.opts.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", c.opts.MergeOutputFormat)
	}
	if c.opts.WriteThumbnail {
		args = append(args, "--write-thumbnail")
	}
	if c.opts.EmbedThumbnail {
		args = append(args, "--embed-thumbnail")
	}
	if c.opts.AllSubs {
		args = append(args, "--all-subs")
	}
	if c.opts.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", c.opts.CookiesFromBrowser)
	}
	if c.opts.OutputTemplate != "" {
		args = append(args, "-o", filepath.Join(downloadDir, c.opts.OutputTemplate))
	}
	return append(args, url)
}

// Download fetches a single URL into downloadDir, creating it if needed.
// Child stdio is inherited so yt-dlp progress stays visible.
func (c *Client) Download(ctx context.Context, url, downloadDir string) error {
	if strings.TrimSpace(url) == "" {
		return services.Wrap(services.ErrValidation, "download", "yt-dlp", "url is required", nil)
	}
	if strings.TrimSpace(downloadDir) == "" {
		return services.Wrap(services.ErrValidation, "download", "yt-dlp", "download directory is required", nil)
	}
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "download", "yt-dlp", fmt.Sprintf("create %s", downloadDir), err)
	}

	args := c.BuildArgs(url, downloadDir)
	if err := c.exec.Run(ctx, downloadDir, c.opts.Binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "yt-dlp", url, err)
	}
	return nil
}

// Version returns the installed yt-dlp version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.exec.Output(ctx, c.opts.Binary, []string{"--version"})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "yt-dlp", "version probe", err)
	}
	return strings.TrimSpace(out), nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, args...).Output() //nolint:gosec
	if err != nil {
		return "", err
	}
	return string(out), nil
}
