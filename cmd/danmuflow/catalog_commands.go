package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"danmuflow/internal/catalog"
	"danmuflow/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage download entries",
	}

	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))
	catalogCmd.AddCommand(newCatalogImportCommand(ctx))

	return catalogCmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var description string
	var downloadDir string
	var urls []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a download entry (prompts for missing fields)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if strings.TrimSpace(description) == "" {
				description = promptLine(in, out, "Description: ")
			}
			if strings.TrimSpace(downloadDir) == "" {
				suggested := filepath.Join(cfg.Paths.LibraryDir, description)
				downloadDir = promptLine(in, out, fmt.Sprintf("Download directory [%s]: ", suggested))
				if downloadDir == "" {
					downloadDir = suggested
				}
			}
			expanded, err := config.ExpandPath(downloadDir)
			if err != nil {
				return fmt.Errorf("resolve download directory: %w", err)
			}
			downloadDir = expanded

			if len(urls) == 0 {
				fmt.Fprintln(out, "Enter URLs one per line; finish with an empty line.")
				for {
					url := promptLine(in, out, "URL: ")
					if url == "" {
						break
					}
					urls = append(urls, url)
				}
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Add(cmd.Context(), description, downloadDir, urls)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added entry %d (%s) with %d URL(s)\n", entry.ID, entry.Description, len(entry.URLs))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Entry description")
	cmd.Flags().StringVar(&downloadDir, "dir", "", "Download directory (defaults under the library)")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "URL to download (repeatable)")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List download entries",
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

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No download entries configured. Use \"danmuflow catalog add\" to create one.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				lastRun := "never"
				if entry.LastRunAt != nil {
					lastRun = humanize.Time(*entry.LastRunAt)
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.Description,
					entry.DownloadDir,
					strconv.Itoa(len(entry.URLs)),
					humanize.Time(entry.CreatedAt),
					string(entry.LastStatus),
					lastRun,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Description", "Directory", "URLs", "Added", "Status", "Last Run"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a download entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
			return nil
		},
	}
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <config.json>",
		Short: "Import entries from a legacy config.json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			imported, skipped, err := store.ImportLegacy(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries, skipped %d\n", imported, skipped)
			return nil
		},
	}
}

func promptLine(in *bufio.Scanner, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
