package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danmuflow/internal/config"
	"danmuflow/internal/danmaku"
	"danmuflow/internal/services/danmu2ass"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert danmaku XML files under the library to ASS",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Paths.LibraryDir
			if root != "" {
				target, err = config.ExpandPath(root)
				if err != nil {
					return fmt.Errorf("resolve conversion root: %w", err)
				}
			}

			client, err := danmu2ass.New(cfg.Danmu2Ass)
			if err != nil {
				return err
			}
			batch := danmaku.NewBatch(client, ctx.logger())
			summary, err := batch.Run(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Found == 0 {
				fmt.Fprintln(out, "No danmaku XML files found.")
				return nil
			}
			fmt.Fprintf(out, "Converted %d of %d danmaku file(s)\n", summary.Converted, summary.Found)
			if summary.Failed > 0 {
				return fmt.Errorf("%d conversion(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory to scan (defaults to the library)")
	return cmd
}
