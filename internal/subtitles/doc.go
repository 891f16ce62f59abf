// Package subtitles merges danmaku ASS overlay tracks with SRT subtitle
// files and cleans up the generated outputs.
//
// The merger is pure Go: it parses SRT cues, converts their timestamps to
// ASS form, injects a dedicated Subtitle style under [V4+ Styles], and
// appends the cues as Dialogue lines. Inputs that are not UTF-8 are decoded
// as GBK before parsing.
package subtitles
