// Package ytdlp wraps yt-dlp CLI invocations for the downloader. Flags are
// assembled from the [ytdlp] config section and the child process inherits
// stdio so download progress stays visible.
package ytdlp
