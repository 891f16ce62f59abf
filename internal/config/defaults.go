package config

const (
	defaultLibraryDir = "~/video"
	defaultDataDir    = "~/.local/share/danmuflow"
	defaultLogDir     = "~/.local/share/danmuflow/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	defaultYtDlpBinary        = "yt-dlp"
	defaultFormat             = "bestvideo+bestaudio/best"
	defaultFormatSort         = "res,fps,vcodec:h264"
	defaultMergeOutputFormat  = "mp4"
	defaultOutputTemplate     = "%(title)s.%(ext)s"
	defaultCookiesFromBrowser = ""

	defaultDanmu2AssBinary = "danmu2ass"
	defaultWidth           = 1920
	defaultHeight          = 1080
	defaultFloatPercentage = 0.35
	defaultFont            = "黑体"
	defaultFontSize        = 32
	defaultOutline         = 0.8
	defaultAlpha           = 0.76
	defaultDuration        = 15
	defaultWidthRatio      = 1.2
	defaultHorizontalGap   = 20
	defaultLaneSize        = 32

	defaultSubtitleFont     = "黑体"
	defaultSubtitleFontSize = 42
	defaultSubtitleMarginV  = 90
)

// Default returns a Config populated with repository defaults. The danmu2ass
// style preset matches the values the converter has always shipped with.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		YtDlp: YtDlp{
			Binary:             defaultYtDlpBinary,
			Format:             defaultFormat,
			FormatSort:         defaultFormatSort,
			MergeOutputFormat:  defaultMergeOutputFormat,
			WriteThumbnail:     true,
			EmbedThumbnail:     false,
			AllSubs:            true,
			CookiesFromBrowser: defaultCookiesFromBrowser,
			OutputTemplate:     defaultOutputTemplate,
		},
		Danmu2Ass: Danmu2Ass{
			Binary:          defaultDanmu2AssBinary,
			Width:           defaultWidth,
			Height:          defaultHeight,
			FloatPercentage: defaultFloatPercentage,
			Font:            defaultFont,
			FontSize:        defaultFontSize,
			Bold:            true,
			Outline:         defaultOutline,
			Alpha:           defaultAlpha,
			DurationSeconds: defaultDuration,
			WidthRatio:      defaultWidthRatio,
			HorizontalGap:   defaultHorizontalGap,
			LaneSize:        defaultLaneSize,
		},
		Merge: Merge{
			SubtitleFont:     defaultSubtitleFont,
			SubtitleFontSize: defaultSubtitleFontSize,
			SubtitleMarginV:  defaultSubtitleMarginV,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
