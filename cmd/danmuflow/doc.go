// Package main hosts the danmuflow CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the download catalog, the yt-dlp
// download runner, danmaku conversion, subtitle merging, cleanup, and the
// interactive menu that chains those stages. It centralizes configuration
// resolution and logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
