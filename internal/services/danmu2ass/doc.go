// Package danmu2ass wraps the danmu2ass CLI, which renders danmaku comment
// XML into ASS overlay tracks using the configured style preset.
package danmu2ass
