// Package danmaku drives batch conversion of danmaku comment XML files into
// ASS overlay tracks via the danmu2ass client.
package danmaku
