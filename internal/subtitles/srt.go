package subtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cue is one SRT subtitle block with its times already converted to the ASS
// H:MM:SS.cc form.
type Cue struct {
	Start string
	End   string
	Text  string
}

var srtTimeLine = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)

// ParseSRT extracts cues from SRT content. Malformed blocks are skipped
// rather than failing the whole file.
func ParseSRT(content string) []Cue {
	var cues []Cue
	blocks := strings.Split(strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		match := srtTimeLine.FindStringSubmatch(lines[1])
		if match == nil {
			continue
		}
		start, err := convertSRTTime(match[1])
		if err != nil {
			continue
		}
		end, err := convertSRTTime(match[2])
		if err != nil {
			continue
		}
		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues
}

// convertSRTTime converts "00:00:07,560" to the ASS form "0:00:07.56"
// (no leading zero on the hour, centisecond precision).
func convertSRTTime(value string) (string, error) {
	parts := strings.Split(strings.ReplaceAll(value, ",", "."), ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed timestamp %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("malformed hours in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed minutes in %q", value)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return "", fmt.Errorf("malformed seconds in %q", value)
	}
	return fmt.Sprintf("%d:%02d:%05.2f", hours, minutes, seconds), nil
}

// Dialogue renders the cue as an ASS dialogue line bound to the named style.
// Line breaks become \N and curly braces are escaped so the text cannot open
// an override block.
func (c Cue) Dialogue(style string) string {
	text := strings.ReplaceAll(c.Text, "\n", `\N`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)
	return fmt.Sprintf("Dialogue: 0,%s,%s,%s,,0,0,0,,%s", c.Start, c.End, style, text)
}
