package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"danmuflow/internal/config"
)

// Requirement defines an external binary danmuflow relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArg, when set, is passed to the binary to capture a version
	// string for the status detail.
	VersionArg string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external tools used by the pipeline.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YtDlpBinary(),
			Description: "video downloader",
			VersionArg:  "--version",
		},
		{
			Name:        "danmu2ass",
			Command:     cfg.Danmu2AssBinary(),
			Description: "danmaku XML to ASS renderer",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		if req.VersionArg != "" {
			if version := probeVersion(ctx, cmd, req.VersionArg); version != "" {
				status.Detail = version
			}
		}
		results = append(results, status)
	}
	return results
}

func probeVersion(ctx context.Context, binary, arg string) string {
	out, err := exec.CommandContext(ctx, binary, arg).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
