package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halvard/duplifind/core/cache"
	"github.com/halvard/duplifind/core/infrastructure/i18n"
)

// newCacheCmd exposes the §6 cache_ops surface (stats, clear,
// cleanup_missing, cleanup_stale) as CLI subcommands over the same store
// the dedup command uses.
func newCacheCmd(localizer i18n.Localizer) *cobra.Command {
	var cachePath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or maintain the analysis cache",
	}
	cmd.PersistentFlags().StringVar(&cachePath, "cache-path", "", "analysis cache location (default: ~/.duplicate_finder_cache.db)")

	open := func() (*cache.Store, error) {
		path := cachePath
		if path == "" {
			var err error
			path, err = cache.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		return cache.Open(path)
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and size on disk",
		RunE: func(*cobra.Command, []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Stats()
			if err != nil {
				return err
			}
			fmt.Println(localizer.Translate("CacheStats", map[string]interface{}{
				"Path":    stats.Path,
				"Entries": stats.TotalEntries,
				"Bytes":   formatBytes(stats.BytesOnDisk),
			}))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the cache",
		RunE: func(*cobra.Command, []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			return store.Clear()
		},
	}

	cleanupMissingCmd := &cobra.Command{
		Use:   "cleanup-missing",
		Short: "Remove entries whose file no longer exists on disk",
		RunE: func(*cobra.Command, []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			removed, err := store.CleanupMissing()
			if err != nil {
				return err
			}
			fmt.Printf("removed %d entries\n", removed)
			return nil
		},
	}

	var maxAgeDays int
	cleanupStaleCmd := &cobra.Command{
		Use:   "cleanup-stale",
		Short: "Remove entries not accessed within the given number of days",
		RunE: func(*cobra.Command, []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			removed, err := store.CleanupStale(maxAgeDays)
			if err != nil {
				return err
			}
			fmt.Printf("removed %d entries\n", removed)
			return nil
		},
	}
	cleanupStaleCmd.Flags().IntVar(&maxAgeDays, "max-age-days", 90, "entries older than this are removed")

	cmd.AddCommand(statsCmd, clearCmd, cleanupMissingCmd, cleanupStaleCmd)
	return cmd
}
