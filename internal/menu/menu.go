package menu

import (
	"danmuflow/internal/config"
)

// Step is a single external command invocation inside an action. Its exit
// status decides whether the following steps run.
type Step struct {
	Name    string
	Command []string
}

// Action is one selectable menu entry. Steps run strictly in order and stop
// at the first failure. Terminal marks the entry that ends the loop.
type Action struct {
	Key      string
	Label    string
	Steps    []Step
	Terminal bool
}

// Actions builds the static action table. Pipeline steps default to
// re-invoking self with the matching subcommand; the [menu] config section
// can point individual stages at external replacements instead.
func Actions(cfg *config.Config, self []string) []Action {
	download := downloaderCommand(cfg.Menu.DownloaderCommand, self, "download")
	subset := downloaderCommand(cfg.Menu.DownloaderCommand, self, "download", "--select")
	add := downloaderCommand(cfg.Menu.DownloaderCommand, self, "catalog", "add")
	list := downloaderCommand(cfg.Menu.DownloaderCommand, self, "catalog", "list")
	convert := toolCommand(cfg.Menu.ConverterCommand, self, "convert")
	merge := toolCommand(cfg.Menu.MergerCommand, self, "merge")

	return []Action{
		{
			Key:   "1",
			Label: "Add a download entry",
			Steps: []Step{{Name: "add", Command: add}},
		},
		{
			Key:   "2",
			Label: "Download everything",
			Steps: []Step{
				{Name: "download", Command: download},
				{Name: "convert", Command: convert},
				{Name: "merge", Command: merge},
			},
		},
		{
			Key:   "3",
			Label: "Download selected entries",
			Steps: []Step{
				{Name: "download", Command: subset},
				{Name: "convert", Command: convert},
				{Name: "merge", Command: merge},
			},
		},
		{
			Key:   "4",
			Label: "List download entries",
			Steps: []Step{{Name: "list", Command: list}},
		},
		{
			Key:      "5",
			Label:    "Exit",
			Terminal: true,
		},
	}
}

// downloaderCommand appends the subcommand arguments to the configured
// downloader override, or to the running binary when no override is set.
func downloaderCommand(override, self []string, args ...string) []string {
	base := self
	if len(override) > 0 {
		base = override
	}
	return append(append([]string(nil), base...), args...)
}

// toolCommand runs the configured override verbatim. Converter and merger
// replacements take no subcommand argument; only the self invocation does.
func toolCommand(override, self []string, arg string) []string {
	if len(override) > 0 {
		return append([]string(nil), override...)
	}
	return append(append([]string(nil), self...), arg)
}
