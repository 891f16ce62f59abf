package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYtDlp()
	c.normalizeDanmu2Ass()
	c.normalizeMerge()
	c.normalizeMenu()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYtDlp() {
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = defaultYtDlpBinary
	}
	c.YtDlp.Format = strings.TrimSpace(c.YtDlp.Format)
	c.YtDlp.FormatSort = strings.TrimSpace(c.YtDlp.FormatSort)
	c.YtDlp.MergeOutputFormat = strings.TrimSpace(c.YtDlp.MergeOutputFormat)
	c.YtDlp.CookiesFromBrowser = strings.TrimSpace(c.YtDlp.CookiesFromBrowser)
	c.YtDlp.OutputTemplate = strings.TrimSpace(c.YtDlp.OutputTemplate)
	if c.YtDlp.OutputTemplate == "" {
		c.YtDlp.OutputTemplate = defaultOutputTemplate
	}
}

func (c *Config) normalizeDanmu2Ass() {
	c.Danmu2Ass.Binary = strings.TrimSpace(c.Danmu2Ass.Binary)
	if c.Danmu2Ass.Binary == "" {
		c.Danmu2Ass.Binary = defaultDanmu2AssBinary
	}
	if c.Danmu2Ass.Width <= 0 {
		c.Danmu2Ass.Width = defaultWidth
	}
	if c.Danmu2Ass.Height <= 0 {
		c.Danmu2Ass.Height = defaultHeight
	}
	if c.Danmu2Ass.FloatPercentage <= 0 {
		c.Danmu2Ass.FloatPercentage = defaultFloatPercentage
	}
	c.Danmu2Ass.Font = strings.TrimSpace(c.Danmu2Ass.Font)
	if c.Danmu2Ass.Font == "" {
		c.Danmu2Ass.Font = defaultFont
	}
	if c.Danmu2Ass.FontSize <= 0 {
		c.Danmu2Ass.FontSize = defaultFontSize
	}
	if c.Danmu2Ass.Outline <= 0 {
		c.Danmu2Ass.Outline = defaultOutline
	}
	if c.Danmu2Ass.Alpha <= 0 {
		c.Danmu2Ass.Alpha = defaultAlpha
	}
	if c.Danmu2Ass.DurationSeconds <= 0 {
		c.Danmu2Ass.DurationSeconds = defaultDuration
	}
	if c.Danmu2Ass.WidthRatio <= 0 {
		c.Danmu2Ass.WidthRatio = defaultWidthRatio
	}
	if c.Danmu2Ass.HorizontalGap <= 0 {
		c.Danmu2Ass.HorizontalGap = defaultHorizontalGap
	}
	if c.Danmu2Ass.LaneSize <= 0 {
		c.Danmu2Ass.LaneSize = defaultLaneSize
	}
}

func (c *Config) normalizeMerge() {
	c.Merge.SubtitleFont = strings.TrimSpace(c.Merge.SubtitleFont)
	if c.Merge.SubtitleFont == "" {
		c.Merge.SubtitleFont = defaultSubtitleFont
	}
	if c.Merge.SubtitleFontSize <= 0 {
		c.Merge.SubtitleFontSize = defaultSubtitleFontSize
	}
	if c.Merge.SubtitleMarginV <= 0 {
		c.Merge.SubtitleMarginV = defaultSubtitleMarginV
	}
}

func (c *Config) normalizeMenu() {
	c.Menu.DownloaderCommand = trimCommand(c.Menu.DownloaderCommand)
	c.Menu.ConverterCommand = trimCommand(c.Menu.ConverterCommand)
	c.Menu.MergerCommand = trimCommand(c.Menu.MergerCommand)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimCommand(command []string) []string {
	out := make([]string, 0, len(command))
	for _, arg := range command {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
