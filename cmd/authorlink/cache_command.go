package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the fetched-document cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count, size, and age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.newFetchCache()
			if err != nil {
				return err
			}
			stats := cache.Stats()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			fmt.Fprintf(out, "Size:    %d bytes\n", stats.TotalSize)
			if !stats.Oldest.IsZero() {
				fmt.Fprintf(out, "Oldest:  %s\n", stats.Oldest.Local().Format(time.RFC1123))
				fmt.Fprintf(out, "Newest:  %s\n", stats.Newest.Local().Format(time.RFC1123))
			}
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.newFetchCache()
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	})

	return cacheCmd
}
