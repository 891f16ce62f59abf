// Package downloader runs yt-dlp downloads across catalog entries while
// holding the library file lock.
package downloader
