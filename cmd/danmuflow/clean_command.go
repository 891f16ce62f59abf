package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"danmuflow/internal/config"
	"danmuflow/internal/subtitles"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var root string
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete generated .merged.ass files under the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Paths.LibraryDir
			if root != "" {
				target, err = config.ExpandPath(root)
				if err != nil {
					return fmt.Errorf("resolve clean root: %w", err)
				}
			}

			files, err := subtitles.FindMerged(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No merged subtitle files found.")
				return nil
			}

			for _, file := range files {
				fmt.Fprintf(out, "  %s\n", file)
			}
			if !yes {
				fmt.Fprintf(out, "Delete these %d file(s)? [y/N]: ", len(files))
				in := bufio.NewScanner(cmd.InOrStdin())
				if !in.Scan() {
					return in.Err()
				}
				answer := strings.ToLower(strings.TrimSpace(in.Text()))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			result := subtitles.DeleteMerged(cmd.Context(), ctx.logger(), files)
			fmt.Fprintf(out, "Deleted %d file(s)\n", result.Deleted)
			if result.Failed > 0 {
				return fmt.Errorf("%d file(s) could not be deleted", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory to scan (defaults to the library)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}
