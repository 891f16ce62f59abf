// Package logging assembles the structured slog loggers used across
// danmuflow commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component tagging so the downloader, converter, and
// merger emit lines with the same shape. Prefer these constructors over
// hand-rolled slog setup.
package logging
