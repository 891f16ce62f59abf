package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
}

// YtDlp mirrors the yt-dlp flags assembled for every download invocation.
type YtDlp struct {
	Binary             string `toml:"binary"`
	Format             string `toml:"format"`
	FormatSort         string `toml:"format_sort"`
	MergeOutputFormat  string `toml:"merge_output_format"`
	WriteThumbnail     bool   `toml:"write_thumbnail"`
	EmbedThumbnail     bool   `toml:"embed_thumbnail"`
	AllSubs            bool   `toml:"all_subs"`
	CookiesFromBrowser string `toml:"cookies_from_browser"`
	OutputTemplate     string `toml:"output_template"`
}

// Danmu2Ass contains the danmaku renderer binary and its style preset.
type Danmu2Ass struct {
	Binary          string  `toml:"binary"`
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	FloatPercentage float64 `toml:"float_percentage"`
	Font            string  `toml:"font"`
	FontSize        int     `toml:"font_size"`
	Bold            bool    `toml:"bold"`
	Outline         float64 `toml:"outline"`
	Alpha           float64 `toml:"alpha"`
	DurationSeconds int     `toml:"duration"`
	WidthRatio      float64 `toml:"width_ratio"`
	HorizontalGap   int     `toml:"horizontal_gap"`
	LaneSize        int     `toml:"lane_size"`
}

// Merge controls the subtitle style injected when SRT cues are merged into a
// danmaku ASS track.
type Merge struct {
	SubtitleFont     string `toml:"subtitle_font"`
	SubtitleFontSize int    `toml:"subtitle_font_size"`
	SubtitleMarginV  int    `toml:"subtitle_margin_v"`
}

// Menu allows the interactive menu's pipeline steps to be pointed at external
// replacements. Empty values mean the danmuflow binary re-invokes itself.
type Menu struct {
	DownloaderCommand []string `toml:"downloader_command"`
	ConverterCommand  []string `toml:"converter_command"`
	MergerCommand     []string `toml:"merger_command"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for danmuflow.
//
// Sections by subsystem:
//   - Paths: library, data, and log directories
//   - YtDlp: download flags passed to yt-dlp
//   - Danmu2Ass: danmaku XML to ASS conversion preset
//   - Merge: subtitle style used by the ASS/SRT merger
//   - Menu: pipeline step command overrides
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	YtDlp     YtDlp     `toml:"ytdlp"`
	Danmu2Ass Danmu2Ass `toml:"danmu2ass"`
	Merge     Merge     `toml:"merge"`
	Menu      Menu      `toml:"menu"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/danmuflow/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("danmuflow.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories. LibraryDir is created on a
// best-effort basis so commands can still run when external storage is
// temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		_ = os.MkdirAll(c.Paths.LibraryDir, 0o755)
	}
	return nil
}

// DatabasePath returns the catalog database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

// LockPath returns the download run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "download.lock")
}

// YtDlpBinary returns the yt-dlp executable name.
func (c *Config) YtDlpBinary() string {
	return c.YtDlp.Binary
}

// Danmu2AssBinary returns the danmu2ass executable name.
func (c *Config) Danmu2AssBinary() string {
	return c.Danmu2Ass.Binary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
