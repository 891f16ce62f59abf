// Package services holds shared plumbing for the external tool clients:
// sentinel error markers with stage-aware wrapping. Tool-specific clients
// live in subpackages (ytdlp, danmu2ass).
package services
