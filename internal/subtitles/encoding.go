package subtitles

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// ReadTextFile reads a subtitle file as UTF-8, retrying with a GBK decoder
// when the bytes are not valid UTF-8. Danmaku tooling on Windows commonly
// writes GBK.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s as GBK: %w", path, err)
	}
	return string(decoded), nil
}
