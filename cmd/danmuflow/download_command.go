package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"danmuflow/internal/catalog"
	"danmuflow/internal/downloader"
	"danmuflow/internal/services/ytdlp"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var selectIDs bool

	cmd := &cobra.Command{
		Use:   "download [id...]",
		Short: "Download configured entries with yt-dlp",
		Long: "Download configured entries with yt-dlp. With no arguments every entry\n" +
			"is fetched; pass entry ids to fetch a subset, or --select to pick\n" +
			"interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := ytdlp.New(cfg.YtDlp)
			if err != nil {
				return err
			}
			runner := downloader.New(cfg, store, client, ctx.logger("download.log"))

			ids, err := parseEntryIDs(args)
			if err != nil {
				return err
			}
			if selectIDs {
				if len(ids) > 0 {
					return errors.New("--select and explicit ids are mutually exclusive")
				}
				ids, err = promptEntrySelection(cmd, store)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing selected.")
					return nil
				}
			}

			var summary downloader.Summary
			if len(ids) == 0 {
				summary, err = runner.DownloadAll(cmd.Context())
			} else {
				summary, err = runner.DownloadSubset(cmd.Context(), ids)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d URL(s) across %d entries\n", summary.Succeeded, summary.Entries)
			if summary.Failed > 0 {
				return fmt.Errorf("%d download(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectIDs, "select", false, "Pick entries interactively before downloading")
	return cmd
}

func parseEntryIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, field := range strings.Fields(strings.ReplaceAll(arg, ",", " ")) {
			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid entry id %q", field)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// promptEntrySelection lists the catalog and reads a line of ids to fetch.
func promptEntrySelection(cmd *cobra.Command, store *catalog.Store) ([]int64, error) {
	entries, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No download entries configured.")
		return nil, nil
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "  %d. %s (%d URLs, last: %s)\n",
			entry.ID, entry.Description, len(entry.URLs), entry.LastStatus)
	}
	fmt.Fprint(out, "Entry ids to download (space or comma separated): ")

	in := bufio.NewScanner(cmd.InOrStdin())
	if !in.Scan() {
		return nil, in.Err()
	}
	line := strings.TrimSpace(in.Text())
	if line == "" {
		return nil, nil
	}
	return parseEntryIDs([]string{line})
}
