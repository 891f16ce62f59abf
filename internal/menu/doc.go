// Package menu implements the interactive loop that maps numbered
// selections onto pipelines of external command invocations.
package menu
