package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danmuflow/internal/config"
	"danmuflow/internal/subtitles"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge SRT subtitles into converted danmaku ASS tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Paths.LibraryDir
			if root != "" {
				target, err = config.ExpandPath(root)
				if err != nil {
					return fmt.Errorf("resolve merge root: %w", err)
				}
			}

			merger := subtitles.NewMerger(cfg.Merge, ctx.logger())
			summary, err := merger.Run(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Merged == 0 && summary.Skipped == 0 {
				fmt.Fprintln(out, "No subtitle pairs found to merge.")
				return nil
			}
			fmt.Fprintf(out, "Merged %d subtitle track(s), skipped %d\n", summary.Merged, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory to scan (defaults to the library)")
	return cmd
}
